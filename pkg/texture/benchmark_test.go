package texture

import "testing"

// BenchmarkUnswizzle benchmarks Morton reordering at common surface sizes.
func BenchmarkUnswizzle(b *testing.B) {
	for _, size := range []int{64, 256, 1024} {
		src := make([]byte, size*size*4)
		for i := range src {
			src[i] = byte(i)
		}

		b.Run(sizeName(size), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Unswizzle(src, size, size, 4); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConvert benchmarks the full BGRA8888 path.
func BenchmarkConvert(b *testing.B) {
	payload := make([]byte, 512*512*4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Convert(FormatBGRA8888, 512, 512, 0, payload); err != nil {
			b.Fatal(err)
		}
	}
}

func sizeName(n int) string {
	switch n {
	case 64:
		return "64x64"
	case 256:
		return "256x256"
	default:
		return "1024x1024"
	}
}
