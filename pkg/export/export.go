// Package export drives extraction of TXD archives into DDS files on disk.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/RemakeEngine/txdtools/pkg/archive"
	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/preview"
	"github.com/RemakeEngine/txdtools/pkg/txd"
)

// Summary holds the totals of one run.
type Summary struct {
	TotalTexturesExported int
	FilesProcessed        int
	FilesWithExports      int
}

type summaryCounters struct {
	textures    atomic.Int64
	processed   atomic.Int64
	withExports atomic.Int64
}

func (c *summaryCounters) snapshot() Summary {
	return Summary{
		TotalTexturesExported: int(c.textures.Load()),
		FilesProcessed:        int(c.processed.Load()),
		FilesWithExports:      int(c.withExports.Load()),
	}
}

type exportConfig struct {
	workers        int
	preview        preview.Format
	previewMaxSize int
	manifest       bool
	compressOutput bool
}

// Option configures an Exporter.
type Option func(*exportConfig)

// WithWorkers sets how many archives are processed at once.
func WithWorkers(n int) Option {
	return func(c *exportConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPreview writes an image of each texture next to its DDS, scaled to
// fit maxSize when maxSize > 0.
func WithPreview(f preview.Format, maxSize int) Option {
	return func(c *exportConfig) {
		c.preview = f
		c.previewMaxSize = maxSize
	}
}

// WithManifest writes textures.json into every output directory.
func WithManifest(enabled bool) Option {
	return func(c *exportConfig) {
		c.manifest = enabled
	}
}

// WithCompressOutput stores DDS files ZSTD-compressed as .dds.zst.
func WithCompressOutput(enabled bool) Option {
	return func(c *exportConfig) {
		c.compressOutput = enabled
	}
}

// Exporter extracts textures from TXD archives.
type Exporter struct {
	cfg exportConfig
	log logging.Logger
}

// New creates an Exporter that reports to sink. A nil sink discards output.
func New(sink logging.Sink, opts ...Option) *Exporter {
	cfg := exportConfig{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Exporter{cfg: cfg, log: logging.New(sink)}
}

// Run extracts input into outputDir (or per-archive sibling directories
// when outputDir is empty). It returns false after logging the first fatal
// error.
func (e *Exporter) Run(input, outputDir string) bool {
	summary, err := e.Export(context.Background(), input, outputDir)
	if err != nil {
		e.log.Errorf("extraction failed: %v", err)
		return false
	}

	e.log.Infof("exported %d textures from %d files (%d with textures)",
		summary.TotalTexturesExported, summary.FilesProcessed, summary.FilesWithExports)
	return true
}

// Export processes every archive under input. The first fatal error stops
// the batch: no further archives are started and the error is returned with
// the counts accumulated so far.
func (e *Exporter) Export(ctx context.Context, input, outputDir string) (Summary, error) {
	files, err := ResolveInputs(input)
	if err != nil {
		return Summary{}, err
	}
	e.log.Infof("found %d .txd files under %s", len(files), input)

	var counters summaryCounters
	manifests := newManifestSet()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers)

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			n, err := e.processFile(file, OutputDir(file, outputDir), manifests)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			counters.processed.Add(1)
			counters.textures.Add(int64(n))
			if n > 0 {
				counters.withExports.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	if e.cfg.manifest {
		// Archives that completed before a fatal error keep their listing.
		if merr := manifests.write(); merr != nil && err == nil {
			err = merr
		}
	}
	return counters.snapshot(), err
}

// processFile extracts one archive and returns the number of textures written.
func (e *Exporter) processFile(path, outDir string, manifests *manifestSet) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read file: %w", err)
	}

	buf, kind, err := archive.Unwrap(raw)
	if err != nil {
		return 0, fmt.Errorf("unwrap container: %w", err)
	}
	if kind != archive.KindRaw {
		e.log.Debugf("%s: unwrapped %s container (%d -> %d bytes)", path, kind, len(raw), len(buf))
	}

	w := newDirWriter(filepath.ToSlash(path), outDir, &e.cfg, e.log)
	stats, err := txd.Extract(buf, w, e.log)
	if err != nil {
		return stats.Exported, err
	}
	manifests.add(outDir, w.entries)

	e.checkCounts(path, stats)
	e.log.Infof("%s: %d textures in %d segments -> %s", path, stats.Exported, stats.Segments, outDir)
	return stats.Exported, nil
}

// checkCounts warns when the raw signature counts disagree with what was
// exported. Placeholders and skipped names make this expected in some files.
func (e *Exporter) checkCounts(path string, s txd.Stats) {
	if s.BlockMarkers != s.NameSignatures {
		e.log.Warnf("%s: %d block markers but %d name signatures", path, s.BlockMarkers, s.NameSignatures)
	}
	if s.NameSignatures != s.Exported {
		e.log.Warnf("%s: %d name signatures but %d textures exported", path, s.NameSignatures, s.Exported)
	}
}

// Run extracts input with default options, reporting to sink.
func Run(input, outputDir string, sink logging.Sink) bool {
	return New(sink).Run(input, outputDir)
}
