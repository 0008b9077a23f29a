package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds the settings for a batch conversion run.
type Config struct {
	InputDir    string `json:"input_dir"`
	OutputDir   string `json:"output_dir"`
	PaletteFile string `json:"palette_file"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	PaletteFile string
	Workers     int
}

// Resolve applies flag overrides and fills remaining empty fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.PaletteFile != "" {
		c.PaletteFile = flags.PaletteFile
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
