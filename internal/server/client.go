package server

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"planet-texgen/internal/protocol"
)

// Client requests planets from a Server. It is safe for one request at a
// time; Generate serializes callers.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
	next int
}

// Dial connects to a websocket URL such as ws://host:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("server: dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Generate sends req and waits for its response. The request ID is
// assigned by the client.
func (c *Client) Generate(ctx context.Context, req protocol.Request) (*protocol.PlanetPayload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	req.ID = strconv.Itoa(c.next)

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetReadDeadline(deadline)
		defer c.conn.SetReadDeadline(time.Time{})
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("server: send: %w", err)
	}
	for {
		var resp protocol.Response
		if err := c.conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("server: receive: %w", err)
		}
		if resp.ID != req.ID {
			continue // stale answer to an abandoned request
		}
		if err := resp.Err(); err != nil {
			return nil, err
		}
		return resp.Planet, nil
	}
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteMessage(websocket.CloseMessage, msg)
	return c.conn.Close()
}
