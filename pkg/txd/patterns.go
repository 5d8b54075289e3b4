// Package txd decodes TXD texture archives. The container has no fixed
// schema: texture boundaries, names and pixel metadata are located by
// scanning for the byte signatures declared here.
package txd

import "bytes"

var (
	// FileStartMarker opens a TXD file.
	FileStartMarker = []byte{0x16, 0x00, 0x00, 0x00}

	// BlockStartMarker opens every further texture block and closes the
	// previous one.
	BlockStartMarker = []byte{0x15, 0x00, 0x00, 0x00}

	// EOFPrefix and EOFSuffix surround eight variable bytes at the end of
	// the texture data. The suffix embeds a BlockStartMarker.
	EOFPrefix = []byte{0x03, 0x00, 0x00, 0x00}
	EOFSuffix = []byte{0x15, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}

	// NameSignature precedes every texture name.
	NameSignature = []byte{0x02, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00}
)

const (
	eofVariableLen = 8

	// EOFSentinelLen is the full length of the EOF sentinel.
	EOFSentinelLen = 4 + eofVariableLen + 8

	// NameOffset is the distance from a name signature to the name text.
	NameOffset = 12

	// MetadataSize is the length of the block holding format and dimensions.
	MetadataSize = 16

	// MetadataMarker precedes the format code inside a metadata block.
	MetadataMarker byte = 0x01

	// FallbackOffset is where texture data begins in the alternate layout
	// that has no block markers.
	FallbackOffset = 0x0C
)

// findEOFSentinels returns the offset of every EOF sentinel in buf.
func findEOFSentinels(buf []byte) []int {
	var offsets []int
	pos := 0
	for {
		rel := bytes.Index(buf[pos:], EOFPrefix)
		if rel < 0 {
			return offsets
		}
		at := pos + rel
		suffixAt := at + len(EOFPrefix) + eofVariableLen
		if suffixAt+len(EOFSuffix) <= len(buf) && bytes.Equal(buf[suffixAt:suffixAt+len(EOFSuffix)], EOFSuffix) {
			offsets = append(offsets, at)
		}
		pos = at + 1
	}
}

// CountEOFSentinels reports how many EOF sentinels buf contains.
func CountEOFSentinels(buf []byte) int {
	return len(findEOFSentinels(buf))
}

// CountNameSignatures reports how many name signatures buf contains.
func CountNameSignatures(buf []byte) int {
	return bytes.Count(buf, NameSignature)
}
