package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"planet-texgen/internal/config"
	"planet-texgen/internal/server"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	listen := flag.String("listen", "", "Listen address (default: :8080)")
	width := flag.Int("width", 0, "Default texture width (default: 2048)")
	height := flag.Int("height", 0, "Default texture height (default: width/2)")
	noiseName := flag.String("noise", "", "Noise primitive: simplex, opensimplex, perlin")
	workers := flag.Int("workers", 0, "Rows generated in parallel per planet (default: NumCPU)")
	maxPixels := flag.Int("max-pixels", 4096*2048, "Largest W*H a client may request")
	cacheSize := flag.Int("cache", 16, "Seeded planets kept in memory (0: off)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Width:   *width,
		Height:  *height,
		Noise:   *noiseName,
		Workers: *workers,
		Listen:  *listen,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(server.Options{
		Width:     cfg.Width,
		Height:    cfg.Height,
		MaxPixels: *maxPixels,
		Noise:     cfg.Noise,
		Workers:   cfg.Workers,
		CacheSize: *cacheSize,
	})
	httpSrv := &http.Server{Addr: cfg.Listen, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Planet server on ws://%s/ws (%dx%d, %s noise, %d workers)\n",
		cfg.Listen, cfg.Width, cfg.Height, cfg.Noise, cfg.Workers)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
