package archive

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel is the level used for wrapped textures.
const DefaultCompressionLevel = zstd.BestSpeed

// Encode compresses data and writes it to w as a ZSTD archive.
func Encode(w io.Writer, data []byte) error {
	return EncodeLevel(w, data, DefaultCompressionLevel)
}

// EncodeLevel is Encode with an explicit compression level.
func EncodeLevel(w io.Writer, data []byte, level int) error {
	if len(data) == 0 {
		return fmt.Errorf("nothing to encode")
	}

	compressed, err := zstd.CompressLevel(nil, data, level)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	var header [HeaderSize]byte
	NewHeader(uint64(len(data)), uint64(len(compressed))).EncodeTo(header[:])
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}
