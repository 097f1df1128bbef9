package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"planet-texgen/internal/export"
	"planet-texgen/internal/planet"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Planet    planet.Options // template; Seed is taken from each job
	Export    export.Options
	Workers   int
	// Progress controls the periodic progress line.
	Progress time.Duration
}

// Job is one planet to generate.
type Job struct {
	Seed int64
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Seed    int64
	Files   []string
	Entry   export.ManifestEntry
	Success bool
	Error   string
}

// Jobs returns count jobs with consecutive seeds starting at seed. A zero
// seed yields zero-seed jobs, which pick their own seed when randomized.
func Jobs(seed int64, count int) []Job {
	jobs := make([]Job, count)
	for i := range jobs {
		if seed != 0 {
			jobs[i].Seed = seed + int64(i)
		}
	}
	return jobs
}

// Run processes all jobs using a worker pool. Cancelling ctx stops
// generation; unstarted jobs report the context error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	workers := max(cfg.Workers, 1)
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.2f planets/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(ctx context.Context, cfg Config, job Job) Result {
	opts := cfg.Planet
	opts.Seed = job.Seed
	// Planets run concurrently; keep each one's derivations single-row.
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	p, err := planet.Generate(ctx, opts)
	if err != nil {
		return Result{Seed: job.Seed, Error: err.Error()}
	}

	files, err := export.WritePlanet(cfg.OutputDir, p, cfg.Export)
	if err != nil {
		return Result{
			Name:  p.Name,
			Seed:  p.Seed,
			Files: files,
			Error: fmt.Sprintf("export: %v", err),
		}
	}

	return Result{
		Name:    p.Name,
		Seed:    p.Seed,
		Files:   files,
		Entry:   export.NewManifestEntry(p, files),
		Success: true,
	}
}

// Entries collects the manifest entries of successful results.
func Entries(results []Result) []export.ManifestEntry {
	var entries []export.ManifestEntry
	for _, r := range results {
		if r.Success {
			entries = append(entries, r.Entry)
		}
	}
	return entries
}
