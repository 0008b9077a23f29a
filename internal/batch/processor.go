package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"mdl-extract/internal/extract"
	"mdl-extract/internal/palette"
)

// Config holds the shared resources for a batch run. Each container is
// still converted start-to-finish by one goroutine; the pool only runs
// separate inputs in parallel.
type Config struct {
	OutputDir string
	Palette   *palette.Table
	Workers   int
}

// Result holds the outcome of converting one container.
type Result struct {
	Input   string `json:"input"`
	Skins   int    `json:"skins"`
	Frames  int    `json:"frames"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Run converts all inputs using a worker pool.
func Run(cfg Config, paths []string) []Result {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
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
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processFile(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	stats, err := extract.File(path, extract.Options{
		Palette: cfg.Palette,
		OutDir:  cfg.OutputDir,
	})
	if err != nil {
		return Result{Input: path, Error: err.Error()}
	}
	return Result{
		Input:   path,
		Skins:   stats.Skins,
		Frames:  stats.Frames,
		Success: true,
	}
}
