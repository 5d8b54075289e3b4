package txd

import (
	"bytes"

	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/texture"
	"github.com/pkg/errors"
)

// Texture is one converted texture handed to a Writer.
type Texture struct {
	Name     string // decoded name
	FileName string // sanitized name without extension
	Offset   int64  // absolute offset of the name signature
	Meta     Metadata
	*texture.Result
}

// Writer persists converted textures. An error from WriteTexture is fatal.
type Writer interface {
	WriteTexture(tex *Texture) error
}

// pendingName tracks the texture whose name has been read but whose
// metadata and pixels have not been consumed yet.
type pendingName struct {
	name      string
	sigOffset int
	absOffset int64
	active    bool
	resolved  bool
}

func (p pendingName) unresolved() bool {
	return p.active && !p.resolved
}

// ProcessSegment extracts every texture in seg and passes it to w. It
// returns the number of textures written; any error aborts the segment.
func ProcessSegment(seg Segment, w Writer, log logging.Logger) (int, error) {
	data := seg.Data
	exported := 0

	var pending pendingName
	pos := 0

	for pos < len(data) {
		rel := bytes.Index(data[pos:], NameSignature)
		if rel < 0 {
			break
		}
		sig := pos + rel
		abs := seg.Start + int64(sig)

		if pending.unresolved() {
			log.Warnf("discarding texture %q at 0x%08X: superseded by name at 0x%08X",
				pending.name, pending.absOffset, abs)
			pending = pendingName{}
		}

		name, nameEnd, ok := extractName(data, sig, abs)
		if !ok {
			log.Warnf("name signature at 0x%08X has no terminator, skipping", abs)
			pos = sig + 1
			continue
		}
		pending = pendingName{name: name, sigOffset: sig, absOffset: abs, active: true}
		log.Debugf("texture %q at 0x%08X", name, abs)

		from := nameEnd
		for from < len(data) && data[from] == 0 {
			from++
		}
		marker := findMetadataMarker(data, from)
		if marker < 0 {
			return exported, errors.Wrapf(ErrMetadataNotFound, "texture %q at 0x%08X", name, abs)
		}

		if next := bytes.Index(data[nameEnd:marker], NameSignature); next >= 0 {
			// Another texture starts before this one's metadata.
			pos = nameEnd + next
			continue
		}

		blockStart := marker - 2
		if blockStart < 0 || blockStart+MetadataSize > len(data) {
			return exported, errors.Wrapf(ErrMetadataRange, "texture %q: block at 0x%08X",
				name, seg.Start+int64(blockStart))
		}
		blockEnd := blockStart + MetadataSize

		meta, err := ParseMetadata(data[blockStart:blockEnd], data[marker+1])
		if err != nil {
			return exported, errors.Wrapf(err, "texture %q at 0x%08X", name, abs)
		}

		if meta.Placeholder() {
			log.Infof("texture %q at 0x%08X is an empty placeholder, skipping", name, abs)
			pending.resolved = true
			pos = blockEnd
			continue
		}
		if meta.Width == 0 || meta.Height == 0 {
			return exported, errors.Wrapf(ErrDimensions, "texture %q: %dx%d", name, meta.Width, meta.Height)
		}
		if meta.TotalSize == 0 {
			return exported, errors.Wrapf(ErrInvalidSize, "texture %q", name)
		}

		remaining := len(data) - blockEnd
		if int64(meta.TotalSize) > int64(remaining) {
			return exported, errors.Wrapf(ErrPayloadTruncated, "texture %q needs %d bytes, %d remain",
				name, meta.TotalSize, remaining)
		}
		payloadEnd := blockEnd + int(meta.TotalSize)

		res, err := texture.Convert(meta.Format, int(meta.Width), int(meta.Height), meta.MipCount,
			data[blockEnd:payloadEnd])
		if err != nil {
			return exported, errors.Wrapf(err, "convert texture %q", name)
		}

		tex := &Texture{
			Name:     name,
			FileName: SanitizeFileName(name, abs),
			Offset:   abs,
			Meta:     meta,
			Result:   res,
		}
		if err := w.WriteTexture(tex); err != nil {
			return exported, errors.Wrapf(err, "write texture %q", name)
		}
		log.Debugf("exported %s (%s %dx%d, %d bytes)", tex.FileName, res.Label, meta.Width, meta.Height, meta.TotalSize)

		exported++
		pending.resolved = true
		pos = payloadEnd
	}

	return exported, nil
}
