package txd

import (
	"encoding/binary"

	"github.com/RemakeEngine/txdtools/pkg/texture"
	"github.com/pkg/errors"
)

// Metadata is the 16-byte block that precedes a texture's pixel payload.
//
// Layout:
//
//	+0x02  marker (0x01)
//	+0x03  format code
//	+0x04  width, big-endian uint16
//	+0x06  height, big-endian uint16
//	+0x09  mip count
//	+0x0C  total pixel size, little-endian uint32
type Metadata struct {
	Format    byte
	Width     uint16
	Height    uint16
	MipCount  uint8
	TotalSize uint32
}

// Placeholder reports whether the block describes an empty texture.
func (m Metadata) Placeholder() bool {
	return m.Width == 0 && m.Height == 0
}

func readU16BE(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

func readU32LE(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ParseMetadata decodes a metadata block. code is the format byte that was
// used to locate the block; the block must carry the same byte at +3.
func ParseMetadata(block []byte, code byte) (Metadata, error) {
	if len(block) < MetadataSize {
		return Metadata{}, errors.Wrapf(ErrMetadataRange, "need %d bytes, got %d", MetadataSize, len(block))
	}
	if block[3] != code {
		return Metadata{}, errors.Wrapf(ErrFormatMismatch, "block has 0x%02X, marker had 0x%02X", block[3], code)
	}
	return Metadata{
		Format:    block[3],
		Width:     readU16BE(block, 4),
		Height:    readU16BE(block, 6),
		MipCount:  block[9],
		TotalSize: readU32LE(block, 12),
	}, nil
}

// findMetadataMarker returns the index of the first 0x01 byte at or after
// from that is followed by a known format code, or -1.
func findMetadataMarker(data []byte, from int) int {
	for i := from; i+1 < len(data); i++ {
		if data[i] == MetadataMarker && texture.KnownFormat(data[i+1]) {
			return i
		}
	}
	return -1
}
