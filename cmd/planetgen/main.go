package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"planet-texgen/internal/batch"
	"planet-texgen/internal/config"
	"planet-texgen/internal/export"
	"planet-texgen/internal/planet"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Texture width (default: 2048)")
	height := flag.Int("height", 0, "Texture height (default: width/2)")
	profile := flag.String("profile", "", "Planet profile: "+strings.Join(planet.Profiles(), ", "))
	noiseName := flag.String("noise", "", "Noise primitive: simplex, opensimplex, perlin")
	seed := flag.Int64("seed", 0, "Generation seed (default: 368579, or random with -randomize)")
	randomize := flag.Bool("randomize", false, "Perturb generation constants")
	count := flag.Int("count", 0, "Number of planets, seeds increase by one")
	outputDir := flag.String("output", "", "Output directory (default: ./planets)")
	formats := flag.String("formats", "", "Comma-separated color map formats: webp, png, tga")
	preview := flag.Int("preview", 0, "Rendered globe preview size in pixels (0: none)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	var formatList []string
	if *formats != "" {
		formatList = strings.Split(*formats, ",")
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		Profile:     *profile,
		Noise:       *noiseName,
		Seed:        *seed,
		Randomize:   *randomize,
		Count:       *count,
		OutputDir:   *outputDir,
		Formats:     formatList,
		PreviewSize: *preview,
		Workers:     *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Resolve the base seed once so a batch gets consecutive seeds.
	if cfg.Seed == 0 {
		cfg.Seed = planet.DefaultSeed
		if cfg.Randomize {
			cfg.Seed = 1 + rand.Int64N(1_000_000)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Print summary
	mode := ""
	if cfg.Randomize {
		mode = " (randomized)"
	}
	fmt.Printf("Planet texture generator: %s%s\n", cfg.Profile, mode)
	fmt.Printf("Planets: %d, Seed: %d, Size: %dx%d, Noise: %s, Workers: %d\n",
		cfg.Count, cfg.Seed, cfg.Width, cfg.Height, cfg.Noise, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// A single planet gets every worker for its rows; a batch spreads
	// planets across workers instead.
	genWorkers := 1
	batchWorkers := cfg.Workers
	if cfg.Count == 1 {
		genWorkers, batchWorkers = cfg.Workers, 1
	}

	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Planet: planet.Options{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Randomize: cfg.Randomize,
			Profile:   cfg.Profile,
			Noise:     cfg.Noise,
			Workers:   genWorkers,
		},
		Export: export.Options{
			Formats:        cfg.Formats,
			FloatMaps:      cfg.FloatMaps,
			ThumbnailWidth: cfg.ThumbnailWidth,
			PreviewSize:    cfg.PreviewSize,
			Supersample:    2,
		},
		Workers: batchWorkers,
	}

	results := batch.Run(ctx, batchCfg, batch.Jobs(cfg.Seed, cfg.Count))

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %s: %d files\n", r.Name, len(r.Files))
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Generated: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  seed %d: %s\n", e.Seed, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := export.WriteManifest(manifestPath, batch.Entries(results)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
