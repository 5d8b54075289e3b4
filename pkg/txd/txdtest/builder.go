// Package txdtest builds synthetic TXD archives for tests.
package txdtest

import (
	"bytes"
	"encoding/binary"

	"github.com/RemakeEngine/txdtools/pkg/txd"
)

// nameFieldSize is the zero-padded length of a texture name.
const nameFieldSize = 32

// Builder assembles a TXD buffer piece by piece.
type Builder struct {
	buf bytes.Buffer
}

// New starts a buffer with the file-start marker and an empty chunk header.
func New() *Builder {
	b := &Builder{}
	b.buf.Write(txd.FileStartMarker)
	b.buf.Write(make([]byte, 8))
	return b
}

// Block appends a block-start marker and an empty chunk header.
func (b *Builder) Block() *Builder {
	b.buf.Write(txd.BlockStartMarker)
	b.buf.Write(make([]byte, 8))
	return b
}

// Texture appends a named texture with a well-formed metadata block.
func (b *Builder) Texture(name string, code byte, width, height int, mips uint8, payload []byte) *Builder {
	return b.TextureWithBlock(name, Metadata(code, width, height, mips, uint32(len(payload))), payload)
}

// TextureWithBlock appends a named texture with a caller-supplied metadata block.
func (b *Builder) TextureWithBlock(name string, block, payload []byte) *Builder {
	b.Name(name)
	b.buf.Write(block)
	b.buf.Write(payload)
	return b
}

// Name appends a name signature and padded name without any metadata.
func (b *Builder) Name(name string) *Builder {
	b.buf.Write(txd.NameSignature)
	b.buf.Write(make([]byte, txd.NameOffset-len(txd.NameSignature)))
	field := make([]byte, max(nameFieldSize, len(name)+2))
	copy(field, name)
	b.buf.Write(field)
	return b
}

// Raw appends p unchanged.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// EOF appends the EOF sentinel.
func (b *Builder) EOF() *Builder {
	b.buf.Write(Sentinel())
	return b
}

// Sentinel returns a standalone EOF sentinel.
func Sentinel() []byte {
	out := make([]byte, 0, txd.EOFSentinelLen)
	out = append(out, txd.EOFPrefix...)
	out = append(out, bytes.Repeat([]byte{0x11}, 8)...)
	return append(out, txd.EOFSuffix...)
}

// Bytes returns the assembled buffer.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Metadata encodes a 16-byte metadata block.
func Metadata(code byte, width, height int, mips uint8, size uint32) []byte {
	block := make([]byte, txd.MetadataSize)
	block[2] = txd.MetadataMarker
	block[3] = code
	binary.BigEndian.PutUint16(block[4:6], uint16(width))
	binary.BigEndian.PutUint16(block[6:8], uint16(height))
	block[9] = mips
	binary.LittleEndian.PutUint32(block[12:16], size)
	return block
}

// SingleTexture returns a complete archive holding one texture.
func SingleTexture(name string, code byte, width, height int, payload []byte) []byte {
	return New().Block().Texture(name, code, width, height, 0, payload).EOF().Bytes()
}
