// Package server exposes planet generation over a websocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"planet-texgen/internal/planet"
	"planet-texgen/internal/protocol"
)

// Options configures a Server.
type Options struct {
	// Default size for requests that leave it unset.
	Width, Height int
	// MaxPixels bounds W·H of a single request. 0 means no bound.
	MaxPixels int
	Noise     string
	Workers   int
	CacheSize int
}

// Server answers protocol requests on /ws.
type Server struct {
	opts     Options
	cache    *Cache
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// New creates a server.
func New(opts Options) *Server {
	return &Server{
		opts:  opts,
		cache: NewCache(opts.CacheSize),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // renderer may be served from anywhere
			},
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/profiles", s.handleProfiles)
	return mux
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(planet.Profiles()); err != nil {
		log.Println("profiles write error:", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMutex
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	// Requests run concurrently; responses are matched by ID.
	var pending sync.WaitGroup
	defer pending.Wait()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		var req protocol.Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}
		pending.Add(1)
		go func() {
			defer pending.Done()
			resp := s.Serve(ctx, req)
			connMutex.Lock()
			err := conn.WriteJSON(resp)
			connMutex.Unlock()
			if err != nil {
				log.Println("WebSocket write error:", err)
				cancel()
			}
		}()
	}
}

// Serve generates the planet for one request.
func (s *Server) Serve(ctx context.Context, req protocol.Request) protocol.Response {
	opts := req.Options()
	if opts.Width <= 0 {
		opts.Width = s.opts.Width
	}
	if opts.Height <= 0 {
		opts.Height = s.opts.Height
	}
	if opts.Noise == "" {
		opts.Noise = s.opts.Noise
	}
	opts.Workers = s.opts.Workers

	if s.opts.MaxPixels > 0 && opts.Height > 0 && opts.Width > s.opts.MaxPixels/opts.Height {
		return protocol.Failure(req.ID, fmt.Errorf("server: %dx%d exceeds %d pixels", opts.Width, opts.Height, s.opts.MaxPixels))
	}

	p, err := s.cache.Resolve(opts, func() (*planet.Planet, error) {
		return planet.Generate(ctx, opts)
	})
	if err != nil {
		return protocol.Failure(req.ID, err)
	}
	return protocol.Done(req.ID, p)
}
