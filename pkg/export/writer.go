package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RemakeEngine/txdtools/pkg/archive"
	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/preview"
	"github.com/RemakeEngine/txdtools/pkg/txd"
)

// dirWriter writes the textures of one archive into a single directory.
// The directory is created on the first texture so archives that export
// nothing leave no trace on disk.
type dirWriter struct {
	source  string
	dir     string
	cfg     *exportConfig
	log     logging.Logger
	created bool
	entries []ManifestEntry
}

func newDirWriter(source, dir string, cfg *exportConfig, log logging.Logger) *dirWriter {
	return &dirWriter{source: source, dir: dir, cfg: cfg, log: log}
}

func (w *dirWriter) ensureDir() error {
	if w.created {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	w.created = true
	return nil
}

// WriteTexture implements txd.Writer.
func (w *dirWriter) WriteTexture(tex *txd.Texture) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	dds := tex.Bytes()
	fileName := tex.FileName + ".dds"
	data := dds
	if w.cfg.compressOutput {
		var buf bytes.Buffer
		if err := archive.Encode(&buf, dds); err != nil {
			return fmt.Errorf("compress %s: %w", fileName, err)
		}
		fileName += ".zst"
		data = buf.Bytes()
	}

	if err := os.WriteFile(filepath.Join(w.dir, fileName), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}

	if w.cfg.preview != preview.FormatNone {
		w.writePreview(tex.FileName, dds)
	}

	w.entries = append(w.entries, ManifestEntry{
		Source:   w.source,
		Name:     tex.Name,
		File:     fileName,
		Format:   tex.Label,
		Width:    int(tex.Meta.Width),
		Height:   int(tex.Meta.Height),
		MipCount: int(tex.Meta.MipCount),
		Offset:   tex.Offset,
	})
	return nil
}

// writePreview renders a viewable copy next to the DDS. Failures are logged
// and never abort the extraction.
func (w *dirWriter) writePreview(baseName string, dds []byte) {
	path := filepath.Join(w.dir, baseName+w.cfg.preview.Ext())
	f, err := os.Create(path)
	if err != nil {
		w.log.Warnf("preview %s: %v", path, err)
		return
	}
	defer f.Close()

	if err := preview.Render(f, dds, w.cfg.preview, w.cfg.previewMaxSize); err != nil {
		w.log.Warnf("preview %s: %v", path, err)
	}
}
