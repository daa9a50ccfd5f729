//go:build amd64 && !purego

package quant

import "github.com/deepteams/vp9quant/internal/scan"

//go:noescape
func quantizeLanesSSE2(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int

//go:noescape
func quantizeLanes32SSE2(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int

//go:noescape
func quantizeLanesAVX2(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int

//go:noescape
func quantizeLanes32AVX2(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int

// useAVX2 selects the 16-lane bodies. Set once by dispatch_amd64.go.
var useAVX2 bool

// quantizeSIMD runs one block through the assembly. The reslices make a
// short buffer panic here instead of being overrun.
func quantizeSIMD(coeff, qcoeff, dqcoeff []int16, o *scan.Order, k *laneConsts, tx32 bool) int {
	n := len(o.IScan)
	coeff, qcoeff, dqcoeff = coeff[:n], qcoeff[:n], dqcoeff[:n]
	switch {
	case useAVX2 && tx32:
		return quantizeLanes32AVX2(coeff, qcoeff, dqcoeff, o.IScan, k)
	case useAVX2:
		return quantizeLanesAVX2(coeff, qcoeff, dqcoeff, o.IScan, k)
	case tx32:
		return quantizeLanes32SSE2(coeff, qcoeff, dqcoeff, o.IScan, k)
	}
	return quantizeLanesSSE2(coeff, qcoeff, dqcoeff, o.IScan, k)
}

func quantizeBSIMD(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, true, false)
	return quantizeSIMD(coeff, qcoeff, dqcoeff, o, &k, false)
}

func quantizeB32SIMD(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, true, true)
	return quantizeSIMD(coeff, qcoeff, dqcoeff, o, &k, true)
}

func quantizeFPSIMD(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, false, false)
	return quantizeSIMD(coeff, qcoeff, dqcoeff, o, &k, false)
}

func quantizeFP32SIMD(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, false, true)
	return quantizeSIMD(coeff, qcoeff, dqcoeff, o, &k, true)
}
