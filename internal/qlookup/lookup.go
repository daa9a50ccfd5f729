// Package qlookup holds the VP9 quantizer lookup tables and the mapping
// between the user-facing quantizer scale and the internal qindex.
//
// Every function here is total: out-of-range inputs are clamped, never
// reported. Rate control must always be able to resolve a usable index.
package qlookup

const (
	// QIndexRange is the number of distinct qindex values (QINDEX_RANGE).
	QIndexRange = 256
	// MaxQ is the largest qindex (MAXQ).
	MaxQ = QIndexRange - 1

	// QuantizerRange is the number of user-facing quantizer levels.
	QuantizerRange = 64
	// MaxQuantizer is the largest user-facing quantizer level.
	MaxQuantizer = QuantizerRange - 1
)

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampQIndex clamps q to [0, MaxQ].
func ClampQIndex(q int) int {
	return clampInt(q, 0, MaxQ)
}

// ClampQuantizer clamps level to [0, MaxQuantizer].
func ClampQuantizer(level int) int {
	return clampInt(level, 0, MaxQuantizer)
}

// ApplyDelta returns clamp(base+delta, 0, MaxQ). The clamp happens after the
// add, so a delta pushing past either end saturates instead of wrapping.
// Callers must apply a given delta exactly once per (segment, plane).
func ApplyDelta(base, delta int) int {
	return ClampQIndex(base + delta)
}

// QuantizerToQIndex maps a 0-63 quantizer level to a qindex.
func QuantizerToQIndex(level int) int {
	return int(quantizerToQIndex[ClampQuantizer(level)])
}

// QIndexToQuantizer returns the smallest quantizer level whose qindex is at
// least qindex. It is a best-effort inverse of QuantizerToQIndex: qindex
// values between two table entries round up to the next level.
func QIndexToQuantizer(qindex int) int {
	qindex = ClampQIndex(qindex)
	for level, q := range quantizerToQIndex {
		if int(q) >= qindex {
			return level
		}
	}
	return MaxQuantizer
}

// DCQuant returns the DC dequantization step for qindex adjusted by delta.
func DCQuant(qindex, delta int) int16 {
	return dcQLookup[ApplyDelta(qindex, delta)]
}

// ACQuant returns the AC dequantization step for qindex adjusted by delta.
func ACQuant(qindex, delta int) int16 {
	return acQLookup[ApplyDelta(qindex, delta)]
}

// Lossless reports whether a frame with the given base qindex and plane
// deltas is coded losslessly (Walsh-Hadamard transform, no quantization
// error). This requires qindex 0 with every delta at zero.
func Lossless(baseQIndex, yDCDelta, uvDCDelta, uvACDelta int) bool {
	return baseQIndex == 0 && yDCDelta == 0 && uvDCDelta == 0 && uvACDelta == 0
}
