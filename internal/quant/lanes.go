package quant

import "github.com/deepteams/vp9quant/internal/scan"

// Lane kernels walk the block in raster order a vector at a time and take
// the EOB from the inverse scan instead of walking the scan. One constant
// block drives both the portable kernel below and the assembly in
// quant_amd64.s. Output is bit-identical to the *Ref kernels; simd_test.go
// checks this.
//
// The fast path is the regular formula with mul = 0:
// ((((t*0)>>16)+t)*quant_fp)>>shift == (t*quant_fp)>>shift.

// laneConsts holds the constants of one kernel call. Each row stores the DC
// value at index 0 and the AC value after it, so a vector load at index 0
// covers the first coefficients of a block and a load at index 1 is AC
// only. The assembly depends on this layout.
type laneConsts struct {
	thresh  [32]int16 // magnitudes below thresh quantize to zero
	round   [32]int16
	mul     [32]int16
	post    [32]int16
	dequant [32]int16
	level   [16]int16 // DCTMaxValue in every lane
}

// laneFunc is the shape of a lane kernel. coeff, qcoeff and dqcoeff must
// hold len(iscan) values, a multiple of 16.
type laneFunc func(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int

func setRow(r *[32]int16, dc, ac int32) {
	r[0] = int16(dc)
	for i := 1; i < len(r); i++ {
		r[i] = int16(ac)
	}
}

// set fills k for one of the four block paths.
func (k *laneConsts) set(pt *PlaneTables, regular, tx32 bool) {
	dc, ac := &pt.band[scan.BandDC], &pt.band[scan.BandAC]
	switch {
	case regular && tx32:
		setRow(&k.thresh, roundPowerOfTwo(dc.zbin, 1), roundPowerOfTwo(ac.zbin, 1))
		setRow(&k.round, roundPowerOfTwo(dc.round, 1), roundPowerOfTwo(ac.round, 1))
	case regular:
		setRow(&k.thresh, dc.zbin, ac.zbin)
		setRow(&k.round, dc.round, ac.round)
	case tx32:
		setRow(&k.thresh, dc.dequant>>2, ac.dequant>>2)
		setRow(&k.round, roundPowerOfTwo(dc.roundFP, 1), roundPowerOfTwo(ac.roundFP, 1))
	default:
		setRow(&k.thresh, 0, 0)
		setRow(&k.round, dc.roundFP, ac.roundFP)
	}
	if regular {
		setRow(&k.mul, dc.quant, ac.quant)
		setRow(&k.post, dc.quantShift, ac.quantShift)
	} else {
		setRow(&k.mul, 0, 0)
		setRow(&k.post, dc.quantFP, ac.quantFP)
	}
	setRow(&k.dequant, dc.dequant, ac.dequant)
	for i := range k.level {
		k.level[i] = DCTMaxValue
	}
}

const lanes = 8

func quantizeLanesGo(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int {
	return lanesGo(coeff, qcoeff, dqcoeff, iscan, k, 16, 0)
}

func quantizeLanes32Go(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts) int {
	return lanesGo(coeff, qcoeff, dqcoeff, iscan, k, 15, 1)
}

func lanesGo(coeff, qcoeff, dqcoeff, iscan []int16, k *laneConsts, shift, dqShift uint) int {
	n := len(iscan)
	_ = coeff[n-1]
	_ = qcoeff[n-1]
	_ = dqcoeff[n-1]

	eob := -1
	row := 0 // 0 for the vector holding DC, 1 after it
	for base := 0; base < n; base += lanes {
		c := coeff[base : base+lanes : base+lanes]
		qo := qcoeff[base : base+lanes : base+lanes]
		do := dqcoeff[base : base+lanes : base+lanes]
		is := iscan[base : base+lanes : base+lanes]

		for l := 0; l < lanes; l++ {
			j := row + l
			v := int32(c[l])
			sign := v >> 31
			abs := (v ^ sign) - sign
			t := clamp16(abs + int32(k.round[j]))
			t = ((((t * int32(k.mul[j])) >> 16) + t) * int32(k.post[j])) >> shift
			t = clampLevel(t)
			if abs < int32(k.thresh[j]) {
				t = 0
			}
			qo[l] = int16((t ^ sign) - sign)
			do[l] = int16((((t * int32(k.dequant[j])) >> dqShift) ^ sign) - sign)
			if t != 0 && int(is[l]) > eob {
				eob = int(is[l])
			}
		}
		row = 1
	}
	return eob + 1
}

func quantizeBLanes(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, true, false)
	return quantizeLanesGo(coeff, qcoeff, dqcoeff, o.IScan, &k)
}

func quantizeB32Lanes(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, true, true)
	return quantizeLanes32Go(coeff, qcoeff, dqcoeff, o.IScan, &k)
}

func quantizeFPLanes(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, false, false)
	return quantizeLanesGo(coeff, qcoeff, dqcoeff, o.IScan, &k)
}

func quantizeFP32Lanes(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	var k laneConsts
	k.set(pt, false, true)
	return quantizeLanes32Go(coeff, qcoeff, dqcoeff, o.IScan, &k)
}
