package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/preview"
)

// Config holds extraction settings.
type Config struct {
	Input     string `json:"input"`
	OutputDir string `json:"output_dir"`

	Workers        int    `json:"workers"`
	Preview        string `json:"preview"`
	PreviewMaxSize int    `json:"preview_max_size"`
	Manifest       bool   `json:"manifest"`
	CompressOutput bool   `json:"compress_output"`
	LogLevel       string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
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
// Zero values leave the file setting alone.
type Flags struct {
	Input          string
	OutputDir      string
	Workers        int
	Preview        string
	PreviewMaxSize int
	Manifest       bool
	CompressOutput bool
	LogLevel       string
}

// Resolve applies flag overrides and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewMaxSize > 0 {
		c.PreviewMaxSize = flags.PreviewMaxSize
	}
	if flags.Manifest {
		c.Manifest = true
	}
	if flags.CompressOutput {
		c.CompressOutput = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PreviewMaxSize < 0 {
		c.PreviewMaxSize = 0
	}
}

// Validate checks that the resolved settings are usable.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input path is required")
	}
	if _, err := preview.ParseFormat(c.Preview); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
