package quant

import "github.com/deepteams/vp9quant/internal/scan"

// quantizeFPRef is the scalar reference of the fast quantizer:
// q = ((|c| + round_fp) * quant_fp) >> 16, no dead-zone.
func quantizeFPRef(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	n := len(o.Scan)
	_ = coeff[n-1]
	_ = qcoeff[n-1]
	_ = dqcoeff[n-1]

	eob := -1
	for i := 0; i < n; i++ {
		rc := int(o.Scan[i])
		p := &pt.band[scan.Band(rc)]
		c := int32(coeff[rc])
		sign := c >> 31
		abs := (c ^ sign) - sign
		tmp := clamp16(abs + p.roundFP)
		tmp = clampLevel((tmp * p.quantFP) >> FPShift)
		q := (tmp ^ sign) - sign
		qcoeff[rc] = int16(q)
		dqcoeff[rc] = int16(q * p.dequant)
		if tmp != 0 {
			eob = i
		}
	}
	return eob + 1
}

// quantizeFP32Ref is the fast quantizer for 32x32 blocks. Coefficients
// below a quarter step are dropped outright.
func quantizeFP32Ref(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	n := len(o.Scan)
	_ = coeff[n-1]
	_ = qcoeff[n-1]
	_ = dqcoeff[n-1]
	clear(qcoeff[:n])
	clear(dqcoeff[:n])

	eob := -1
	for i := 0; i < n; i++ {
		rc := int(o.Scan[i])
		p := &pt.band[scan.Band(rc)]
		c := int32(coeff[rc])
		sign := c >> 31
		abs := (c ^ sign) - sign
		if abs < p.dequant>>2 {
			continue
		}
		abs = clamp16(abs + roundPowerOfTwo(p.roundFP, 1))
		tmp := clampLevel((abs * p.quantFP) >> (FPShift - 1))
		q := (tmp ^ sign) - sign
		qcoeff[rc] = int16(q)
		dqcoeff[rc] = int16(q * p.dequant / 2)
		if tmp != 0 {
			eob = i
		}
	}
	return eob + 1
}
