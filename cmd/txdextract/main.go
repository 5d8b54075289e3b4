// Package main provides a command-line tool for extracting textures from TXD archives.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RemakeEngine/txdtools/pkg/config"
	"github.com/RemakeEngine/txdtools/pkg/export"
	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/preview"
)

var (
	inputPath      string
	outputDir      string
	configPath     string
	workers        int
	previewFormat  string
	previewMax     int
	writeManifest  bool
	compressOutput bool
	logLevel       string
)

func init() {
	flag.StringVar(&inputPath, "input", "", "Path to a .txd file or a directory containing .txd files")
	flag.StringVar(&outputDir, "output", "", "Output directory (default: <name>_txd beside each archive)")
	flag.StringVar(&configPath, "config", "", "Optional JSON config file")
	flag.IntVar(&workers, "workers", 0, "Number of archives processed in parallel (default 1)")
	flag.StringVar(&previewFormat, "preview", "", "Write a preview image per texture: png, webp, tga")
	flag.IntVar(&previewMax, "preview-max", 0, "Maximum preview width/height in pixels (0 keeps full size)")
	flag.BoolVar(&writeManifest, "manifest", false, "Write textures.json into each output directory")
	flag.BoolVar(&compressOutput, "zstd", false, "Store DDS files ZSTD-compressed as .dds.zst")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		flag.Usage()
		return err
	}

	// Validate has already accepted both values.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := preview.ParseFormat(cfg.Preview)

	exp := export.New(logging.NewConsole(os.Stderr, level),
		export.WithWorkers(cfg.Workers),
		export.WithPreview(format, cfg.PreviewMaxSize),
		export.WithManifest(cfg.Manifest),
		export.WithCompressOutput(cfg.CompressOutput),
	)

	if !exp.Run(cfg.Input, cfg.OutputDir) {
		return fmt.Errorf("extraction of %s failed", cfg.Input)
	}
	return nil
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.Resolve(config.Flags{
		Input:          inputPath,
		OutputDir:      outputDir,
		Workers:        workers,
		Preview:        previewFormat,
		PreviewMaxSize: previewMax,
		Manifest:       writeManifest,
		CompressOutput: compressOutput,
		LogLevel:       logLevel,
	})
	return cfg, nil
}
