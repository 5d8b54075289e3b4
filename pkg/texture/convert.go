package texture

import (
	"fmt"

	"github.com/pkg/errors"
)

// Format codes found at offset 3 of a TXD metadata block.
const (
	FormatDXT1      byte = 0x52
	FormatDXT3      byte = 0x53
	FormatDXT5      byte = 0x54
	FormatBGRA8888  byte = 0x86
	FormatSwizzled8 byte = 0x02 // A8 or L8A8, chosen by payload size
)

var (
	ErrUnknownFormat = errors.New("unknown or unsupported format code")
	ErrSizeMismatch  = errors.New("payload size does not match format")
)

// KnownFormat reports whether code is one of the recognised format codes.
func KnownFormat(code byte) bool {
	switch code {
	case FormatDXT1, FormatDXT3, FormatDXT5, FormatBGRA8888, FormatSwizzled8:
		return true
	}
	return false
}

// FormatName returns a human-readable name for a format code.
func FormatName(code byte) string {
	switch code {
	case FormatDXT1:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatSwizzled8:
		return "A8/L8A8"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", code)
	}
}

// Result is a converted texture ready to be written as header followed by pixels.
type Result struct {
	Header []byte
	Pixels []byte
	Label  string
}

// Bytes returns the complete DDS file contents.
func (r *Result) Bytes() []byte {
	out := make([]byte, len(r.Header)+len(r.Pixels))
	copy(out, r.Header)
	copy(out[len(r.Header):], r.Pixels)
	return out
}

// Convert turns a raw payload into DDS pixels plus a matching header.
func Convert(code byte, width, height int, mipCount uint8, payload []byte) (*Result, error) {
	w, h := uint32(width), uint32(height)

	switch code {
	case FormatDXT1:
		return &Result{Header: CompressedHeader(w, h, uint32(mipCount), DXT1), Pixels: payload, Label: "DXT1"}, nil
	case FormatDXT3:
		return &Result{Header: CompressedHeader(w, h, uint32(mipCount), DXT3), Pixels: payload, Label: "DXT3"}, nil
	case FormatDXT5:
		return &Result{Header: CompressedHeader(w, h, uint32(mipCount), DXT5), Pixels: payload, Label: "DXT5"}, nil

	case FormatBGRA8888:
		if len(payload) != width*height*4 {
			return nil, errors.Wrapf(ErrSizeMismatch, "BGRA8888 %dx%d expects %d bytes, got %d",
				width, height, width*height*4, len(payload))
		}
		linear, err := Unswizzle(payload, width, height, 4)
		if err != nil {
			return nil, errors.Wrap(err, "unswizzle BGRA8888")
		}
		swapBGRA(linear)
		return &Result{Header: RGBAHeader(w, h), Pixels: linear, Label: "BGRA8888 (unswizzled)"}, nil

	case FormatSwizzled8:
		switch len(payload) {
		case width * height:
			linear, err := Unswizzle(payload, width, height, 1)
			if err != nil {
				return nil, errors.Wrap(err, "unswizzle A8")
			}
			return &Result{Header: RGBAHeader(w, h), Pixels: expandA8(linear), Label: "A8 (unswizzled)"}, nil
		case width * height * 2:
			linear, err := Unswizzle(payload, width, height, 2)
			if err != nil {
				return nil, errors.Wrap(err, "unswizzle L8A8")
			}
			return &Result{Header: RGBAHeader(w, h), Pixels: expandL8A8(linear), Label: "L8A8 (unswizzled)"}, nil
		default:
			return nil, errors.Wrapf(ErrSizeMismatch, "format 0x02 %dx%d expects %d or %d bytes, got %d",
				width, height, width*height, width*height*2, len(payload))
		}
	}

	return nil, errors.Wrapf(ErrUnknownFormat, "code 0x%02X", code)
}

// swapBGRA reorders B,G,R,A to R,G,B,A in place.
func swapBGRA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

func expandA8(alpha []byte) []byte {
	out := make([]byte, len(alpha)*4)
	for i, a := range alpha {
		out[i*4+3] = a
	}
	return out
}

func expandL8A8(la []byte) []byte {
	out := make([]byte, len(la)*2)
	for i := 0; i+1 < len(la); i += 2 {
		l, a := la[i], la[i+1]
		o := i * 2
		out[o] = l
		out[o+1] = l
		out[o+2] = l
		out[o+3] = a
	}
	return out
}
