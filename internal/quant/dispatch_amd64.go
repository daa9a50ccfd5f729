//go:build amd64 && !purego

package quant

import "golang.org/x/sys/cpu"

func init() {
	if !cpu.X86.HasSSE2 {
		return
	}
	quantizeB = quantizeBSIMD
	quantizeB32 = quantizeB32SIMD
	quantizeFP = quantizeFPSIMD
	quantizeFP32 = quantizeFP32SIMD
	impl = "sse2"
	if cpu.X86.HasAVX2 {
		useAVX2 = true
		impl = "avx2"
	}
}
