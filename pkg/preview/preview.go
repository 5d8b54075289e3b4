// Package preview renders converted textures into viewable images.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/mauserzjeh/dxt"
	"golang.org/x/image/draw"

	"github.com/RemakeEngine/txdtools/pkg/texture"
)

// Format is an output image encoding.
type Format string

const (
	FormatNone Format = ""
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatNone, FormatPNG, FormatWebP, FormatTGA:
		return f, nil
	case "none", "off":
		return FormatNone, nil
	default:
		return FormatNone, fmt.Errorf("unknown preview format %q", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatNone {
		return ""
	}
	return "." + string(f)
}

// Decode turns the top mip level of a converted DDS into an RGBA image.
func Decode(dds []byte) (*image.RGBA, error) {
	info, ok := texture.ParseHeader(dds)
	if !ok {
		return nil, fmt.Errorf("invalid DDS header")
	}
	w, h := int(info.Width), int(info.Height)
	data := dds[texture.DDS_FILE_HEADER_SIZE:]

	var pix []byte
	var err error
	if info.Compressed {
		fourCC := string(info.FourCC[:])
		switch fourCC {
		case "DXT1":
			pix, err = dxt.DecodeDXT1(data, uint(w), uint(h))
		case "DXT3":
			pix, err = dxt.DecodeDXT3(data, uint(w), uint(h))
		case "DXT5":
			pix, err = dxt.DecodeDXT5(data, uint(w), uint(h))
		default:
			return nil, fmt.Errorf("unsupported FourCC %q", fourCC)
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", fourCC, err)
		}
	} else {
		pix = data
	}

	need := w * h * 4
	if len(pix) < need {
		return nil, fmt.Errorf("pixel data too short: %d < %d", len(pix), need)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix[:need])
	return img, nil
}

// Fit downscales img so neither side exceeds maxSize, preserving aspect
// ratio. Images already within bounds, or maxSize <= 0, are returned as is.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	nw, nh := maxSize, maxSize
	if w > h {
		nh = max(1, h*maxSize/w)
	} else {
		nw = max(1, w*maxSize/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("unknown preview format %q", string(f))
	}
}

// Render decodes dds, fits it to maxSize and encodes it to w.
func Render(w io.Writer, dds []byte, f Format, maxSize int) error {
	img, err := Decode(dds)
	if err != nil {
		return err
	}
	return Encode(w, Fit(img, maxSize), f)
}
