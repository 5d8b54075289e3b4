package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies the envelope around a buffer.
type Kind int

const (
	KindRaw Kind = iota
	KindZSTD
	KindLZ4
)

func (k Kind) String() string {
	switch k {
	case KindZSTD:
		return "zstd"
	case KindLZ4:
		return "lz4"
	}
	return "raw"
}

// lz4FrameMagic is the little-endian LZ4 frame magic number 0x184D2204.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4D, 0x18}

// Detect reports which envelope data starts with.
func Detect(data []byte) Kind {
	switch {
	case len(data) >= HeaderSize && bytes.Equal(data[:4], Magic[:]):
		return KindZSTD
	case bytes.HasPrefix(data, lz4FrameMagic):
		return KindLZ4
	}
	return KindRaw
}

// Unwrap returns the payload of a compressed envelope. Raw buffers are
// returned unchanged.
func Unwrap(data []byte) ([]byte, Kind, error) {
	kind := Detect(data)
	switch kind {
	case KindZSTD:
		out, err := decodeZSTD(data)
		return out, kind, err
	case KindLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, kind, fmt.Errorf("decompress lz4 frame: %w", err)
		}
		return out, kind, nil
	}
	return data, kind, nil
}

// MaxUncompressedSize bounds the size an archive header may claim.
const MaxUncompressedSize = 1 << 30

// ErrTooLarge is returned when a header claims more than MaxUncompressedSize.
var ErrTooLarge = errors.New("archive claims an implausible uncompressed size")

func decodeZSTD(data []byte) ([]byte, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("parse archive header: %w", err)
	}

	body := data[HeaderSize:]
	if uint64(len(body)) < h.CompressedLength {
		return nil, fmt.Errorf("archive truncated: header says %d compressed bytes, have %d",
			h.CompressedLength, len(body))
	}

	if h.Length > MaxUncompressedSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, h.Length)
	}

	out, err := zstd.Decompress(nil, body[:h.CompressedLength])
	if err != nil {
		return nil, fmt.Errorf("decompress archive: %w", err)
	}
	if uint64(len(out)) != h.Length {
		return nil, fmt.Errorf("incomplete read: expected %d, got %d", h.Length, len(out))
	}
	return out, nil
}
