// Package texture converts raw TXD pixel payloads into DDS files.
//
// Two header layouts are produced:
//  1. Block-compressed DXT1/DXT3/DXT5 with a FourCC pixel format
//  2. Uncompressed 32-bit RGBA8888 with explicit channel masks
//
// Swizzled payloads are reordered from Morton (Z-order) layout into
// row-major order before they are written.
package texture

import (
	"encoding/binary"
)

// DDS header constants
const (
	DDS_MAGIC                    = 0x20534444 // "DDS "
	DDS_HEADER_SIZE              = 124
	DDS_FILE_HEADER_SIZE         = 4 + DDS_HEADER_SIZE
	DDS_HEADER_FLAGS_CAPS        = 0x1
	DDS_HEADER_FLAGS_HEIGHT      = 0x2
	DDS_HEADER_FLAGS_WIDTH       = 0x4
	DDS_HEADER_FLAGS_PITCH       = 0x8
	DDS_HEADER_FLAGS_PIXELFORMAT = 0x1000
	DDS_HEADER_FLAGS_MIPMAPCOUNT = 0x20000
	DDS_HEADER_FLAGS_LINEARSIZE  = 0x80000

	DDS_SURFACE_FLAGS_COMPLEX = 0x8
	DDS_SURFACE_FLAGS_TEXTURE = 0x1000
	DDS_SURFACE_FLAGS_MIPMAP  = 0x400000

	DDS_PIXELFORMAT_SIZE = 32
	DDPF_ALPHAPIXELS     = 0x1
	DDPF_FOURCC          = 0x4
	DDPF_RGB             = 0x40
)

// Channel masks for little-endian packed RGBA8888.
const (
	RGBA_MASK_R = 0x000000FF
	RGBA_MASK_G = 0x0000FF00
	RGBA_MASK_B = 0x00FF0000
	RGBA_MASK_A = 0xFF000000
)

// Byte offsets of the header fields, counted from the start of the magic.
const (
	offFlags       = 8
	offHeight      = 12
	offWidth       = 16
	offPitchOrSize = 20
	offMipCount    = 28
	offPixelFormat = 76
	offCaps        = 108
)

// Codec identifies a block-compressed DDS codec.
type Codec int

const (
	DXT1 Codec = iota
	DXT3
	DXT5
)

func (c Codec) String() string {
	switch c {
	case DXT1:
		return "DXT1"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	}
	return "UNKNOWN"
}

// FourCC returns the pixel-format tag for the codec.
func (c Codec) FourCC() [4]byte {
	var tag [4]byte
	copy(tag[:], c.String())
	return tag
}

// BlockSize is the number of bytes one 4x4 block occupies.
func (c Codec) BlockSize() uint32 {
	if c == DXT1 {
		return 8
	}
	return 16
}

// LinearSize calculates the top-level surface size for a compressed texture.
func LinearSize(width, height uint32, codec Codec) uint32 {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	return blocksWide * blocksHigh * codec.BlockSize()
}

// CompressedHeader builds the 128-byte header for DXT data. A mip count of
// zero is written as one. MIPMAPCOUNT and the MIPMAP|COMPLEX caps are only
// set for chains longer than one level, so an explicit count of 1 produces
// the same header as 0.
func CompressedHeader(width, height, mipCount uint32, codec Codec) []byte {
	if mipCount == 0 {
		mipCount = 1
	}

	flags := uint32(DDS_HEADER_FLAGS_CAPS | DDS_HEADER_FLAGS_HEIGHT | DDS_HEADER_FLAGS_WIDTH |
		DDS_HEADER_FLAGS_PIXELFORMAT | DDS_HEADER_FLAGS_LINEARSIZE)
	caps := uint32(DDS_SURFACE_FLAGS_TEXTURE)
	if mipCount > 1 {
		flags |= DDS_HEADER_FLAGS_MIPMAPCOUNT
		caps |= DDS_SURFACE_FLAGS_MIPMAP | DDS_SURFACE_FLAGS_COMPLEX
	}

	header := newHeader(width, height, flags, LinearSize(width, height, codec), mipCount, caps)

	pf := header[offPixelFormat:]
	binary.LittleEndian.PutUint32(pf[4:8], DDPF_FOURCC)
	tag := codec.FourCC()
	copy(pf[8:12], tag[:])

	return header
}

// RGBAHeader builds the 128-byte header for uncompressed RGBA8888 data.
func RGBAHeader(width, height uint32) []byte {
	flags := uint32(DDS_HEADER_FLAGS_CAPS | DDS_HEADER_FLAGS_HEIGHT | DDS_HEADER_FLAGS_WIDTH |
		DDS_HEADER_FLAGS_PIXELFORMAT | DDS_HEADER_FLAGS_PITCH)

	header := newHeader(width, height, flags, width*4, 1, DDS_SURFACE_FLAGS_TEXTURE)

	pf := header[offPixelFormat:]
	binary.LittleEndian.PutUint32(pf[4:8], DDPF_RGB|DDPF_ALPHAPIXELS)
	binary.LittleEndian.PutUint32(pf[12:16], 32)
	binary.LittleEndian.PutUint32(pf[16:20], RGBA_MASK_R)
	binary.LittleEndian.PutUint32(pf[20:24], RGBA_MASK_G)
	binary.LittleEndian.PutUint32(pf[24:28], RGBA_MASK_B)
	binary.LittleEndian.PutUint32(pf[28:32], RGBA_MASK_A)

	return header
}

// newHeader fills the fields shared by both layouts. Depth, the 11 reserved
// words, caps2-4 and reserved2 stay zero.
func newHeader(width, height, flags, pitchOrSize, mipCount, caps uint32) []byte {
	header := make([]byte, DDS_FILE_HEADER_SIZE)

	binary.LittleEndian.PutUint32(header[0:4], DDS_MAGIC)
	binary.LittleEndian.PutUint32(header[4:8], DDS_HEADER_SIZE)
	binary.LittleEndian.PutUint32(header[offFlags:], flags)
	binary.LittleEndian.PutUint32(header[offHeight:], height)
	binary.LittleEndian.PutUint32(header[offWidth:], width)
	binary.LittleEndian.PutUint32(header[offPitchOrSize:], pitchOrSize)
	binary.LittleEndian.PutUint32(header[offMipCount:], mipCount)
	binary.LittleEndian.PutUint32(header[offPixelFormat:], DDS_PIXELFORMAT_SIZE)
	binary.LittleEndian.PutUint32(header[offCaps:], caps)

	return header
}

// HeaderInfo is the subset of a DDS header needed to read the pixels back.
type HeaderInfo struct {
	Width       uint32
	Height      uint32
	MipCount    uint32
	Compressed  bool
	FourCC      [4]byte
	PitchOrSize uint32
}

// ParseHeader reads back a header produced by CompressedHeader or RGBAHeader.
func ParseHeader(data []byte) (HeaderInfo, bool) {
	if len(data) < DDS_FILE_HEADER_SIZE || binary.LittleEndian.Uint32(data[0:4]) != DDS_MAGIC {
		return HeaderInfo{}, false
	}
	info := HeaderInfo{
		Width:       binary.LittleEndian.Uint32(data[offWidth:]),
		Height:      binary.LittleEndian.Uint32(data[offHeight:]),
		MipCount:    binary.LittleEndian.Uint32(data[offMipCount:]),
		PitchOrSize: binary.LittleEndian.Uint32(data[offPitchOrSize:]),
	}
	pfFlags := binary.LittleEndian.Uint32(data[offPixelFormat+4:])
	if pfFlags&DDPF_FOURCC != 0 {
		info.Compressed = true
		copy(info.FourCC[:], data[offPixelFormat+8:offPixelFormat+12])
	}
	return info, true
}
