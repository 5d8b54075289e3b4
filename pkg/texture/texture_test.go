package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestCompressedHeader(t *testing.T) {
	t.Run("DXT1_64x64", func(t *testing.T) {
		header := CompressedHeader(64, 64, 0, DXT1)

		if len(header) != 128 {
			t.Fatalf("Expected 128-byte header, got %d", len(header))
		}
		if string(header[0:4]) != "DDS " {
			t.Errorf("Expected magic \"DDS \", got %q", header[0:4])
		}
		if size := binary.LittleEndian.Uint32(header[4:8]); size != DDS_HEADER_SIZE {
			t.Errorf("Expected header size 124, got %d", size)
		}
		if linear := binary.LittleEndian.Uint32(header[20:24]); linear != 2048 {
			t.Errorf("Expected linear size 2048, got %d", linear)
		}
		if mips := binary.LittleEndian.Uint32(header[28:32]); mips != 1 {
			t.Errorf("Expected mip count 1, got %d", mips)
		}
		if string(header[84:88]) != "DXT1" {
			t.Errorf("Expected FourCC DXT1, got %q", header[84:88])
		}

		flags := binary.LittleEndian.Uint32(header[8:12])
		if flags&DDS_HEADER_FLAGS_LINEARSIZE == 0 {
			t.Error("LINEARSIZE flag not set")
		}
		if flags&DDS_HEADER_FLAGS_MIPMAPCOUNT != 0 {
			t.Error("MIPMAPCOUNT flag set for single-level texture")
		}
		if caps := binary.LittleEndian.Uint32(header[108:112]); caps != DDS_SURFACE_FLAGS_TEXTURE {
			t.Errorf("Expected caps TEXTURE only, got 0x%X", caps)
		}
	})

	t.Run("DXT1_OneMipLevel", func(t *testing.T) {
		header := CompressedHeader(64, 64, 1, DXT1)

		if mips := binary.LittleEndian.Uint32(header[28:32]); mips != 1 {
			t.Errorf("Expected mip count 1, got %d", mips)
		}
		if flags := binary.LittleEndian.Uint32(header[8:12]); flags&DDS_HEADER_FLAGS_MIPMAPCOUNT != 0 {
			t.Error("MIPMAPCOUNT flag set for an explicit single level")
		}
	})

	t.Run("DXT5_WithMips", func(t *testing.T) {
		header := CompressedHeader(256, 128, 9, DXT5)

		if linear := binary.LittleEndian.Uint32(header[20:24]); linear != 64*32*16 {
			t.Errorf("Expected linear size %d, got %d", 64*32*16, linear)
		}
		if mips := binary.LittleEndian.Uint32(header[28:32]); mips != 9 {
			t.Errorf("Expected mip count 9, got %d", mips)
		}
		if flags := binary.LittleEndian.Uint32(header[8:12]); flags&DDS_HEADER_FLAGS_MIPMAPCOUNT == 0 {
			t.Error("MIPMAPCOUNT flag not set")
		}
		caps := binary.LittleEndian.Uint32(header[108:112])
		want := uint32(DDS_SURFACE_FLAGS_TEXTURE | DDS_SURFACE_FLAGS_MIPMAP | DDS_SURFACE_FLAGS_COMPLEX)
		if caps != want {
			t.Errorf("Expected caps 0x%X, got 0x%X", want, caps)
		}
	})
}

func TestRGBAHeader(t *testing.T) {
	header := RGBAHeader(32, 16)

	if pitch := binary.LittleEndian.Uint32(header[20:24]); pitch != 128 {
		t.Errorf("Expected pitch 128, got %d", pitch)
	}
	if flags := binary.LittleEndian.Uint32(header[8:12]); flags&DDS_HEADER_FLAGS_PITCH == 0 {
		t.Error("PITCH flag not set")
	}
	if pf := binary.LittleEndian.Uint32(header[80:84]); pf != DDPF_RGB|DDPF_ALPHAPIXELS {
		t.Errorf("Expected pixel format flags 0x41, got 0x%X", pf)
	}
	if bpp := binary.LittleEndian.Uint32(header[88:92]); bpp != 32 {
		t.Errorf("Expected 32 bits per pixel, got %d", bpp)
	}

	masks := []uint32{RGBA_MASK_R, RGBA_MASK_G, RGBA_MASK_B, RGBA_MASK_A}
	for i, want := range masks {
		off := 92 + i*4
		if got := binary.LittleEndian.Uint32(header[off : off+4]); got != want {
			t.Errorf("Mask %d: expected 0x%08X, got 0x%08X", i, want, got)
		}
	}
}

func TestParseHeader(t *testing.T) {
	info, ok := ParseHeader(CompressedHeader(8, 4, 2, DXT3))
	if !ok {
		t.Fatal("ParseHeader rejected a generated header")
	}
	if info.Width != 8 || info.Height != 4 || info.MipCount != 2 || !info.Compressed {
		t.Errorf("Unexpected info: %+v", info)
	}
	if string(info.FourCC[:]) != "DXT3" {
		t.Errorf("Expected FourCC DXT3, got %q", info.FourCC[:])
	}

	if _, ok := ParseHeader([]byte("not a dds")); ok {
		t.Error("Expected short input to be rejected")
	}
}

func TestLinearSize(t *testing.T) {
	tests := []struct {
		width    uint32
		height   uint32
		codec    Codec
		expected uint32
	}{
		{64, 64, DXT1, 16 * 16 * 8},
		{64, 64, DXT3, 16 * 16 * 16},
		{4, 4, DXT5, 16},
		// Non-multiple of 4 (rounds up)
		{5, 1, DXT1, 2 * 1 * 8},
	}

	for _, tt := range tests {
		size := LinearSize(tt.width, tt.height, tt.codec)
		if size != tt.expected {
			t.Errorf("%dx%d %s: expected %d, got %d", tt.width, tt.height, tt.codec, tt.expected, size)
		}
	}
}

func TestMorton2D(t *testing.T) {
	tests := []struct {
		x, y, want uint32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
		{2, 0, 4},
		{3, 3, 15},
		{0xFFFF, 0, 0x55555555},
		{0, 0xFFFF, 0xAAAAAAAA},
	}

	for _, tt := range tests {
		if got := Morton2D(tt.x, tt.y); got != tt.want {
			t.Errorf("Morton2D(%d, %d): expected %d, got %d", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestMortonIndex(t *testing.T) {
	tests := []struct {
		x, y, w, h, want uint32
	}{
		{3, 2, 4, 4, Morton2D(3, 2)},
		{0, 4, 4, 8, 16},
		{1, 5, 4, 8, 16 + Morton2D(1, 1)},
		{4, 0, 8, 4, 16},
		{7, 3, 8, 4, 16 + Morton2D(3, 3)},
		{0, 3, 1, 16, 3},
		{2, 1, 3, 3, Morton2D(2, 1)},
	}

	for _, tt := range tests {
		if got := MortonIndex(tt.x, tt.y, tt.w, tt.h); got != tt.want {
			t.Errorf("MortonIndex(%d, %d, %dx%d): expected %d, got %d", tt.x, tt.y, tt.w, tt.h, tt.want, got)
		}
	}
}

func TestUnswizzleBijection(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {4, 4}, {8, 8}, {16, 16}, {8, 4}, {4, 8}, {32, 2}, {1, 16}}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		for _, bpp := range []int{1, 2, 4} {
			linear := make([]byte, w*h*bpp)
			for i := 0; i < w*h; i++ {
				for b := 0; b < bpp; b++ {
					linear[i*bpp+b] = byte(i*7 + b)
				}
			}

			// Place each row-major pixel at its Morton index.
			swizzled := make([]byte, len(linear))
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					m := int(MortonIndex(uint32(x), uint32(y), uint32(w), uint32(h)))
					copy(swizzled[m*bpp:(m+1)*bpp], linear[(y*w+x)*bpp:(y*w+x+1)*bpp])
				}
			}

			got, err := Unswizzle(swizzled, w, h, bpp)
			if err != nil {
				t.Fatalf("%dx%d bpp %d: %v", w, h, bpp, err)
			}
			if !bytes.Equal(got, linear) {
				t.Errorf("%dx%d bpp %d: round trip mismatch", w, h, bpp)
			}

			back, err := Swizzle(got, w, h, bpp)
			if err != nil {
				t.Fatalf("%dx%d bpp %d swizzle: %v", w, h, bpp, err)
			}
			if !bytes.Equal(back, swizzled) {
				t.Errorf("%dx%d bpp %d: swizzle is not the inverse", w, h, bpp)
			}
		}
	}
}

func TestUnswizzleShortInput(t *testing.T) {
	_, err := Unswizzle(make([]byte, 15), 4, 4, 1)
	if !errors.Is(err, ErrShortSwizzle) {
		t.Errorf("Expected ErrShortSwizzle, got %v", err)
	}
}

func TestUnswizzleSkipsOutOfRangePixels(t *testing.T) {
	// 3x3 is not a power of two, so some Morton indices exceed the buffer.
	src := make([]byte, 9)
	for i := range src {
		src[i] = byte(i + 1)
	}

	got, err := Unswizzle(src, 3, 3, 1)
	if err != nil {
		t.Fatalf("Unswizzle: %v", err)
	}
	// (2,2) maps to Morton index 12, past the 9-byte buffer.
	if got[8] != 0 {
		t.Errorf("Expected skipped pixel to stay zero, got %d", got[8])
	}
	if got[0] != 1 || got[1] != 2 || got[3] != 3 {
		t.Errorf("Unexpected in-range pixels: %v", got)
	}
}

func TestConvert(t *testing.T) {
	t.Run("DXTPassthrough", func(t *testing.T) {
		payload := bytes.Repeat([]byte{0xAB}, 8)
		res, err := Convert(FormatDXT1, 4, 4, 0, payload)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if res.Label != "DXT1" {
			t.Errorf("Expected label DXT1, got %s", res.Label)
		}
		if !bytes.Equal(res.Pixels, payload) {
			t.Error("DXT payload was modified")
		}
		if len(res.Bytes()) != 128+8 {
			t.Errorf("Expected 136 bytes, got %d", len(res.Bytes()))
		}
	})

	t.Run("BGRA8888", func(t *testing.T) {
		// 2x2: Morton order equals (0,0),(1,0),(0,1),(1,1), identical to row-major.
		payload := []byte{
			1, 2, 3, 4,
			5, 6, 7, 8,
			9, 10, 11, 12,
			13, 14, 15, 16,
		}
		res, err := Convert(FormatBGRA8888, 2, 2, 0, payload)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		want := []byte{
			3, 2, 1, 4,
			7, 6, 5, 8,
			11, 10, 9, 12,
			15, 14, 13, 16,
		}
		if !bytes.Equal(res.Pixels, want) {
			t.Errorf("Expected %v, got %v", want, res.Pixels)
		}
		if info, _ := ParseHeader(res.Header); info.Compressed {
			t.Error("Expected uncompressed header")
		}
	})

	t.Run("BGRA8888_WrongSize", func(t *testing.T) {
		_, err := Convert(FormatBGRA8888, 4, 4, 0, make([]byte, 60))
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("Expected ErrSizeMismatch, got %v", err)
		}
	})

	t.Run("A8", func(t *testing.T) {
		res, err := Convert(FormatSwizzled8, 2, 2, 0, []byte{10, 20, 30, 40})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		want := []byte{0, 0, 0, 10, 0, 0, 0, 20, 0, 0, 0, 30, 0, 0, 0, 40}
		if !bytes.Equal(res.Pixels, want) {
			t.Errorf("Expected %v, got %v", want, res.Pixels)
		}
	})

	t.Run("L8A8", func(t *testing.T) {
		res, err := Convert(FormatSwizzled8, 2, 2, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		want := []byte{1, 1, 1, 2, 3, 3, 3, 4, 5, 5, 5, 6, 7, 7, 7, 8}
		if !bytes.Equal(res.Pixels, want) {
			t.Errorf("Expected %v, got %v", want, res.Pixels)
		}
	})

	t.Run("Format02_WrongSize", func(t *testing.T) {
		_, err := Convert(FormatSwizzled8, 4, 4, 0, make([]byte, 20))
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("Expected ErrSizeMismatch, got %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := Convert(0x99, 4, 4, 0, make([]byte, 16))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Expected ErrUnknownFormat, got %v", err)
		}
	})
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		code     byte
		expected string
	}{
		{FormatDXT1, "DXT1"},
		{FormatDXT5, "DXT5"},
		{FormatBGRA8888, "BGRA8888"},
		{0x99, "UNKNOWN(0x99)"},
	}

	for _, tt := range tests {
		if name := FormatName(tt.code); name != tt.expected {
			t.Errorf("Format 0x%02x: expected %s, got %s", tt.code, tt.expected, name)
		}
	}
}
