package quant

import "github.com/deepteams/vp9quant/internal/scan"

// dequantOne reconstructs one coefficient. The magnitude is scaled and
// shifted before the sign is restored, so 32x32 halving truncates toward
// zero. Values from a corrupt stream are saturated, not rejected.
func dequantOne(q, d int16, shift uint) int16 {
	v := int32(q)
	sign := v >> 31
	abs := (v ^ sign) - sign
	r := (abs * int32(d)) >> shift
	return int16(clamp16((r ^ sign) - sign))
}

func dqShift(tx scan.TxSize) uint {
	if tx == scan.Tx32x32 {
		return 1
	}
	return 0
}

// Dequantize scales every coefficient of a tx block by its band's step.
// The result equals the dqcoeff produced alongside qcoeff by either
// quantizer.
func Dequantize(qcoeff, out []int16, dq *Row, tx scan.TxSize) {
	bands := scan.Bands(tx)
	n := len(bands)
	_ = qcoeff[n-1]
	_ = out[n-1]
	shift := dqShift(tx)
	for rc := 0; rc < n; rc++ {
		out[rc] = dequantOne(qcoeff[rc], dq[bands[rc]], shift)
	}
}

// DequantizeEOB reconstructs only the first eob positions of o. Positions
// past the EOB are neither read nor written; the caller keeps them zero.
func DequantizeEOB(qcoeff, out []int16, dq *Row, o *scan.Order, eob int) {
	if eob > len(o.Scan) {
		eob = len(o.Scan)
	}
	shift := dqShift(o.Size)
	for i := 0; i < eob; i++ {
		rc := int(o.Scan[i])
		out[rc] = dequantOne(qcoeff[rc], dq[scan.Band(rc)], shift)
	}
}
