// Package quant implements VP9 forward quantization (regular and fast
// paths), dequantization, and the per-qindex tables both rely on.
//
// All arithmetic is done in int32, the accumulator width the table
// derivation is sized for: coefficient magnitudes are clamped to int16
// before any multiply, so no product can overflow.
package quant

import (
	"github.com/deepteams/vp9quant/internal/qlookup"
	"github.com/deepteams/vp9quant/internal/scan"
)

const (
	// DCTMaxValue bounds quantized coefficient magnitudes for 8-bit content.
	// Legal transform-domain inputs are also below this value.
	DCTMaxValue = 16384

	// MinCoeff and MaxCoeff are the limits of a stored 8-bit coefficient.
	MinCoeff = -1 << 15
	MaxCoeff = 1<<15 - 1

	// FPShift is the fixed shift of the fast path.
	FPShift = 16
)

// DeltaQ holds the frame-level per-plane qindex offsets.
type DeltaQ struct {
	YDC  int // luma DC
	UVDC int // chroma DC
	UVAC int // chroma AC
}

// Row is the band-indexed view of a quantizer parameter: slot 0 is DC and
// slots 1-7 repeat the AC value.
type Row [scan.NumBands]int16

func expand(dc, ac int32) Row {
	r := Row{int16(dc)}
	for i := 1; i < len(r); i++ {
		r[i] = int16(ac)
	}
	return r
}

// params are the quantizer values of one band.
type params struct {
	quant      int32 // multiplier minus 1<<16, usually negative
	quantShift int32 // 1 << (16 - floor(log2(dequant)))
	zbin       int32
	round      int32
	quantFP    int32
	roundFP    int32
	dequant    int32
}

// PlaneTables holds the quantizer parameters of one plane kind at one
// qindex. Only two bands carry distinct values, DC and AC.
type PlaneTables struct {
	band [2]params
}

func (p *PlaneTables) row(f func(*params) int32) Row {
	return expand(f(&p.band[scan.BandDC]), f(&p.band[scan.BandAC]))
}

// Quant returns the regular-path multipliers.
func (p *PlaneTables) Quant() Row { return p.row(func(b *params) int32 { return b.quant }) }

// QuantShift returns the regular-path post-multipliers.
func (p *PlaneTables) QuantShift() Row { return p.row(func(b *params) int32 { return b.quantShift }) }

// Zbin returns the dead-zone thresholds.
func (p *PlaneTables) Zbin() Row { return p.row(func(b *params) int32 { return b.zbin }) }

// Round returns the regular-path rounding offsets.
func (p *PlaneTables) Round() Row { return p.row(func(b *params) int32 { return b.round }) }

// QuantFP returns the fast-path multipliers.
func (p *PlaneTables) QuantFP() Row { return p.row(func(b *params) int32 { return b.quantFP }) }

// RoundFP returns the fast-path rounding offsets.
func (p *PlaneTables) RoundFP() Row { return p.row(func(b *params) int32 { return b.roundFP }) }

// Dequant returns the dequantization steps.
func (p *PlaneTables) Dequant() Row { return p.row(func(b *params) int32 { return b.dequant }) }

// Tables holds luma and chroma parameters for one qindex.
type Tables struct {
	QIndex int
	Delta  DeltaQ
	Y      PlaneTables
	UV     PlaneTables
}

// Plane returns the tables for a plane kind.
func (t *Tables) Plane(kind PlaneKind) *PlaneTables {
	if kind == Chroma {
		return &t.UV
	}
	return &t.Y
}

// invertQuant derives the multiply-shift pair that divides by d exactly:
// ((((x*quant)>>16)+x)*shift)>>16 == x/d for every x in [0, 32767].
func invertQuant(d int32) (quant, shift int32) {
	l := uint(0)
	for t := uint32(d); t > 1; t >>= 1 {
		l++
	}
	m := 1 + (int32(1)<<(16+l))/d
	return m - (1 << 16), 1 << (16 - l)
}

// zbinFactor returns the dead-zone width in 1/128 steps. It depends on the
// unadjusted luma DC step, not on the plane being built.
func zbinFactor(qindex int) int32 {
	if qindex == 0 {
		return 64
	}
	if qlookup.DCQuant(qindex, 0) < 148 {
		return 84
	}
	return 80
}

func roundPowerOfTwo(v int32, n uint) int32 {
	return (v + (1 << (n - 1))) >> n
}

func buildParams(qindex, band int, dequant int16) params {
	d := int32(dequant)
	roundFactor := int32(48)
	roundFactorFP := int32(42)
	if band == scan.BandDC {
		roundFactorFP = 48
	}
	if qindex == 0 {
		roundFactor = 64
		roundFactorFP = 64
	}
	var p params
	p.dequant = d
	p.quant, p.quantShift = invertQuant(d)
	p.zbin = roundPowerOfTwo(zbinFactor(qindex)*d, 7)
	p.round = (roundFactor * d) >> 7
	p.quantFP = (1 << FPShift) / d
	p.roundFP = (roundFactorFP * d) >> 7
	return p
}

// BuildTables derives the luma and chroma tables for qindex. It is pure and
// total; qindex is clamped to [0, 255].
func BuildTables(qindex int, delta DeltaQ) *Tables {
	q := qlookup.ClampQIndex(qindex)
	t := &Tables{QIndex: q, Delta: delta}
	t.Y.band[scan.BandDC] = buildParams(q, scan.BandDC, qlookup.DCQuant(q, delta.YDC))
	t.Y.band[scan.BandAC] = buildParams(q, scan.BandAC, qlookup.ACQuant(q, 0))
	t.UV.band[scan.BandDC] = buildParams(q, scan.BandDC, qlookup.DCQuant(q, delta.UVDC))
	t.UV.band[scan.BandAC] = buildParams(q, scan.BandAC, qlookup.ACQuant(q, delta.UVAC))
	return t
}
