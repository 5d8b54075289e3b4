package texture

import (
	"math/bits"

	"github.com/pkg/errors"
)

// ErrShortSwizzle is returned when a swizzled buffer cannot cover the surface.
var ErrShortSwizzle = errors.New("swizzled buffer shorter than surface")

// spreadBits inserts a zero bit between each of the low 16 bits of v.
func spreadBits(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// Morton2D returns the Z-order index of (x, y): x occupies the even bits
// and y the odd bits.
func Morton2D(x, y uint32) uint32 {
	return spreadBits(x) | spreadBits(y)<<1
}

// MortonIndex maps (x, y) on a width*height surface to its swizzled position.
// On rectangular power-of-two surfaces only the low bits shared by both axes
// are interleaved; the remaining bits of the longer axis sit above them.
func MortonIndex(x, y, width, height uint32) uint32 {
	if width == height || !isPow2(width) || !isPow2(height) {
		return Morton2D(x, y)
	}

	short := min(width, height)
	shift := uint32(bits.TrailingZeros32(short))
	mask := short - 1
	low := Morton2D(x&mask, y&mask)

	if width > height {
		return low | (x>>shift)<<(2*shift)
	}
	return low | (y>>shift)<<(2*shift)
}

func isPow2(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// Unswizzle copies a Morton-ordered surface into row-major order. Pixels
// whose swizzled position falls past the end of src are left zero, but src
// must hold at least width*height*bpp bytes.
//
// Positions come from MortonIndex. On square surfaces that is plain
// Morton2D; when height > width (or width > height) the bits of the longer
// axis beyond the shorter one are stacked above the interleaved bits, so
// e.g. (0, 4) on a 4x8 surface reads index 16 where Morton2D gives 32.
func Unswizzle(src []byte, width, height, bpp int) ([]byte, error) {
	if width <= 0 || height <= 0 || bpp <= 0 {
		return nil, errors.Errorf("invalid surface %dx%d at %d bytes per pixel", width, height, bpp)
	}

	size := width * height * bpp
	if len(src) < size {
		return nil, errors.Wrapf(ErrShortSwizzle, "need %d bytes for %dx%d at %d bpp, got %d",
			size, width, height, bpp, len(src))
	}

	dst := make([]byte, size)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcOff := int(MortonIndex(uint32(x), uint32(y), uint32(width), uint32(height))) * bpp
			if srcOff+bpp > len(src) {
				continue
			}
			dstOff := (y*width + x) * bpp
			copy(dst[dstOff:dstOff+bpp], src[srcOff:srcOff+bpp])
		}
	}

	return dst, nil
}

// Swizzle is the inverse of Unswizzle.
func Swizzle(src []byte, width, height, bpp int) ([]byte, error) {
	if width <= 0 || height <= 0 || bpp <= 0 {
		return nil, errors.Errorf("invalid surface %dx%d at %d bytes per pixel", width, height, bpp)
	}

	size := width * height * bpp
	if len(src) < size {
		return nil, errors.Wrapf(ErrShortSwizzle, "need %d bytes, got %d", size, len(src))
	}

	dst := make([]byte, size)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dstOff := int(MortonIndex(uint32(x), uint32(y), uint32(width), uint32(height))) * bpp
			if dstOff+bpp > len(dst) {
				continue
			}
			srcOff := (y*width + x) * bpp
			copy(dst[dstOff:dstOff+bpp], src[srcOff:srcOff+bpp])
		}
	}

	return dst, nil
}
