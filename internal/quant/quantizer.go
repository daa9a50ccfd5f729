package quant

import (
	"fmt"

	"github.com/deepteams/vp9quant/internal/scan"
)

// Mode selects the forward quantization path.
type Mode int

const (
	// ModeRegular uses the dead-zone, exact-division quantizer.
	ModeRegular Mode = iota
	// ModeFast uses the fixed-shift quantizer without a dead-zone.
	ModeFast
)

func (m Mode) String() string {
	switch m {
	case ModeRegular:
		return "regular"
	case ModeFast:
		return "fast"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Quantizer quantizes one transform block.
//
// coeff is read in raster order; qcoeff and dqcoeff receive the quantized
// and reconstructed values, and every position of both is written. The
// returned EOB is one past the last nonzero qcoeff in o's scan order, or 0.
// All three slices must hold at least o.Size.N() values.
//
// Regular and Fast may disagree for the same input. Each is only required
// to match its own reference implementation.
type Quantizer interface {
	Quantize(coeff, qcoeff, dqcoeff []int16, p *Plane, o *scan.Order) int
	Mode() Mode
}

// blockFunc is the signature shared by reference and accelerated kernels.
type blockFunc func(coeff, qcoeff, dqcoeff []int16, pt *PlaneTables, o *scan.Order) int

// Kernels in use, replaced at init by dispatch_*.go: assembly on amd64,
// the portable lane kernels elsewhere and under the purego tag.
var (
	quantizeB    blockFunc = quantizeBRef
	quantizeB32  blockFunc = quantizeB32Ref
	quantizeFP   blockFunc = quantizeFPRef
	quantizeFP32 blockFunc = quantizeFP32Ref

	impl = "scalar"
)

// Impl names the kernel family in use: "avx2", "sse2", "lanes" (portable
// Go), or "scalar".
func Impl() string { return impl }

// Regular is the rate-distortion oriented quantizer.
type Regular struct{}

// Mode implements Quantizer.
func (Regular) Mode() Mode { return ModeRegular }

// Quantize implements Quantizer.
func (Regular) Quantize(coeff, qcoeff, dqcoeff []int16, p *Plane, o *scan.Order) int {
	if p.Skip {
		return skipBlock(qcoeff, dqcoeff, o)
	}
	if o.Size == scan.Tx32x32 {
		return quantizeB32(coeff, qcoeff, dqcoeff, p.Tables, o)
	}
	return quantizeB(coeff, qcoeff, dqcoeff, p.Tables, o)
}

// Fast is the fixed-point approximate quantizer used at high speed settings.
type Fast struct{}

// Mode implements Quantizer.
func (Fast) Mode() Mode { return ModeFast }

// Quantize implements Quantizer.
func (Fast) Quantize(coeff, qcoeff, dqcoeff []int16, p *Plane, o *scan.Order) int {
	if p.Skip {
		return skipBlock(qcoeff, dqcoeff, o)
	}
	if o.Size == scan.Tx32x32 {
		return quantizeFP32(coeff, qcoeff, dqcoeff, p.Tables, o)
	}
	return quantizeFP(coeff, qcoeff, dqcoeff, p.Tables, o)
}

// New returns the quantizer for mode. Unknown modes get Regular.
func New(mode Mode) Quantizer {
	if mode == ModeFast {
		return Fast{}
	}
	return Regular{}
}

func skipBlock(qcoeff, dqcoeff []int16, o *scan.Order) int {
	n := len(o.Scan)
	clear(qcoeff[:n])
	clear(dqcoeff[:n])
	return 0
}

// clamp16 saturates v to the int16 range.
func clamp16(v int32) int32 {
	if v < MinCoeff {
		return MinCoeff
	}
	if v > MaxCoeff {
		return MaxCoeff
	}
	return v
}

// clampLevel bounds a quantized magnitude to what the token set can carry.
func clampLevel(v int32) int32 {
	if v > DCTMaxValue {
		return DCTMaxValue
	}
	return v
}
