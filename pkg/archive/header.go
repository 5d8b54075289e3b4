// Package archive unwraps compressed TXD archives and wraps exported
// textures. Two envelopes are recognised: the 24-byte ZSTD archive header
// used by the game's package files, and a standard LZ4 frame.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a ZSTD archive header.
var Magic = [4]byte{0x5a, 0x53, 0x54, 0x44} // "ZSTD"

// HeaderSize is the fixed binary size of an archive header.
const HeaderSize = 24 // 4 + 4 + 8 + 8 bytes

// headerLength is the value stored in Header.HeaderLength: the size of the
// two length fields that follow it.
const headerLength = 16

// Header precedes the compressed stream of a ZSTD archive.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// NewHeader creates a header for the given sizes.
func NewHeader(uncompressedSize, compressedSize uint64) *Header {
	return &Header{
		Magic:            Magic,
		HeaderLength:     headerLength,
		Length:           uncompressedSize,
		CompressedLength: compressedSize,
	}
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != headerLength {
		return fmt.Errorf("invalid header length: expected %d, got %d", headerLength, h.HeaderLength)
	}
	if h.Length == 0 {
		return fmt.Errorf("uncompressed size is zero")
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// EncodeTo writes the header to buf, which must hold HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.Length)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedLength)
}

// DecodeHeader reads and validates a header from the start of data.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h := &Header{
		HeaderLength:     binary.LittleEndian.Uint32(data[4:8]),
		Length:           binary.LittleEndian.Uint64(data[8:16]),
		CompressedLength: binary.LittleEndian.Uint64(data[16:24]),
	}
	copy(h.Magic[:], data[0:4])
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}
