package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdl-extract/internal/batch"
	"mdl-extract/internal/config"
	"mdl-extract/internal/palette"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory to scan for .mdl files (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: next to each input)")
	paletteFile := flag.String("palette", "", "Path to a 768-byte palette file")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
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
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		PaletteFile: *paletteFile,
		Workers:     *workers,
	})

	pal := &palette.Quake
	if cfg.PaletteFile != "" {
		p, err := palette.Load(cfg.PaletteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pal = p
	}

	paths, err := findModels(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.InputDir, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Println("No .mdl files found.")
		os.Exit(0)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("MDL batch extractor\n")
	fmt.Printf("Models: %d, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Palette:   pal,
		Workers:   cfg.Workers,
	}, paths)

	ok, failed := 0, 0
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "  FAILED %s: %s\n", r.Input, r.Error)
		}
	}
	fmt.Printf("Done in %.1fs: %d converted, %d failed\n", time.Since(start).Seconds(), ok, failed)

	manifest := filepath.Join(cfg.OutputDir, "manifest.json")
	if cfg.OutputDir == "" {
		manifest = "manifest.json"
	}
	if err := batch.WriteManifest(manifest, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
		os.Exit(1)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func findModels(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mdl") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
