package quant

import "github.com/deepteams/vp9quant/internal/scan"

// quantizeBRef is the scalar reference of the regular quantizer for 4x4 to
// 16x16 blocks.
func quantizeBRef(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	n := len(o.Scan)
	_ = coeff[n-1]
	_ = qcoeff[n-1]
	_ = dqcoeff[n-1]
	clear(qcoeff[:n])
	clear(dqcoeff[:n])

	zbins := [2]int32{pt.band[0].zbin, pt.band[1].zbin}

	// Trailing coefficients inside the dead-zone cannot become nonzero.
	nonZero := n
	for i := n - 1; i >= 0; i-- {
		rc := int(o.Scan[i])
		c := int32(coeff[rc])
		z := zbins[scan.Band(rc)]
		if c < z && c > -z {
			nonZero--
		} else {
			break
		}
	}

	eob := -1
	for i := 0; i < nonZero; i++ {
		rc := int(o.Scan[i])
		p := &pt.band[scan.Band(rc)]
		c := int32(coeff[rc])
		sign := c >> 31
		abs := (c ^ sign) - sign
		if abs < p.zbin {
			continue
		}
		tmp := clamp16(abs + p.round)
		tmp = ((((tmp * p.quant) >> 16) + tmp) * p.quantShift) >> 16
		tmp = clampLevel(tmp)
		q := (tmp ^ sign) - sign
		qcoeff[rc] = int16(q)
		dqcoeff[rc] = int16(q * p.dequant)
		if tmp != 0 {
			eob = i
		}
	}
	return eob + 1
}

// quantizeB32Ref is the regular quantizer for 32x32 blocks. The transform
// output is scaled down by 2, so zbin and round are halved and the result
// carries one extra bit of precision.
func quantizeB32Ref(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int {
	n := len(o.Scan)
	_ = coeff[n-1]
	_ = qcoeff[n-1]
	_ = dqcoeff[n-1]
	clear(qcoeff[:n])
	clear(dqcoeff[:n])

	zbins := [2]int32{
		roundPowerOfTwo(pt.band[0].zbin, 1),
		roundPowerOfTwo(pt.band[1].zbin, 1),
	}
	rounds := [2]int32{
		roundPowerOfTwo(pt.band[0].round, 1),
		roundPowerOfTwo(pt.band[1].round, 1),
	}

	nonZero := n
	for i := n - 1; i >= 0; i-- {
		rc := int(o.Scan[i])
		c := int32(coeff[rc])
		z := zbins[scan.Band(rc)]
		if c < z && c > -z {
			nonZero--
		} else {
			break
		}
	}

	eob := -1
	for i := 0; i < nonZero; i++ {
		rc := int(o.Scan[i])
		b := scan.Band(rc)
		p := &pt.band[b]
		c := int32(coeff[rc])
		sign := c >> 31
		abs := (c ^ sign) - sign
		if abs < zbins[b] {
			continue
		}
		tmp := clamp16(abs + rounds[b])
		tmp = ((((tmp * p.quant) >> 16) + tmp) * p.quantShift) >> 15
		tmp = clampLevel(tmp)
		q := (tmp ^ sign) - sign
		qcoeff[rc] = int16(q)
		dqcoeff[rc] = int16(q * p.dequant / 2)
		if tmp != 0 {
			eob = i
		}
	}
	return eob + 1
}
