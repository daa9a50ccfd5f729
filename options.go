package vp9quant

import (
	"fmt"

	"github.com/deepteams/vp9quant/internal/qlookup"
)

// Options configures a Frame.
type Options struct {
	// Quantizer is the user-facing quantizer level (0-63, default 32). It
	// is used only when QIndex is negative.
	Quantizer int

	// QIndex sets the base qindex directly (0-255). Negative values derive
	// it from Quantizer.
	QIndex int

	// DeltaQ holds the frame-level plane offsets, each in [-15, 15].
	DeltaQ DeltaQ

	// Segmentation optionally overrides the qindex per segment. Nil
	// disables segmentation.
	Segmentation *Segmentation

	// Mode selects the regular or fast forward quantizer.
	Mode Mode

	// BitDepth must be 8 (or 0 for the default).
	BitDepth int
}

// DefaultOptions returns options for an 8-bit frame at quantizer level 32
// using the regular quantizer.
func DefaultOptions() *Options {
	return &Options{
		Quantizer: 32,
		QIndex:    -1, // sentinel: derive from Quantizer
		Mode:      ModeRegular,
		BitDepth:  8,
	}
}

// Validate reports the first invalid field.
func (o *Options) Validate() error {
	if o.BitDepth != 0 && o.BitDepth != 8 {
		return fmt.Errorf("%w: %d (only 8-bit is supported)", ErrUnsupportedBitDepth, o.BitDepth)
	}
	if o.QIndex < 0 && (o.Quantizer < 0 || o.Quantizer > MaxQuantizer) {
		return fmt.Errorf("%w: Quantizer %d (must be 0-%d)", ErrBadOptions, o.Quantizer, MaxQuantizer)
	}
	if o.QIndex > MaxQIndex {
		return fmt.Errorf("%w: QIndex %d (must be 0-%d, or negative to derive)", ErrBadOptions, o.QIndex, MaxQIndex)
	}
	for _, d := range []struct {
		name string
		v    int
	}{
		{"DeltaQ.YDC", o.DeltaQ.YDC},
		{"DeltaQ.UVDC", o.DeltaQ.UVDC},
		{"DeltaQ.UVAC", o.DeltaQ.UVAC},
	} {
		if d.v < -MaxDeltaQ || d.v > MaxDeltaQ {
			return fmt.Errorf("%w: %s %d (must be %d to %d)", ErrBadOptions, d.name, d.v, -MaxDeltaQ, MaxDeltaQ)
		}
	}
	if o.Mode != ModeRegular && o.Mode != ModeFast {
		return fmt.Errorf("%w: Mode %d", ErrBadOptions, int(o.Mode))
	}
	if s := o.Segmentation; s != nil && s.Enabled {
		for i, d := range s.Data {
			if !d.AltQEnabled {
				continue
			}
			if d.AltQ < -MaxQIndex || d.AltQ > MaxQIndex {
				return fmt.Errorf("%w: segment %d AltQ %d (must be %d to %d)", ErrBadOptions, i, d.AltQ, -MaxQIndex, MaxQIndex)
			}
		}
	}
	return nil
}

// baseQIndex resolves the frame's base qindex.
func (o *Options) baseQIndex() int {
	if o.QIndex >= 0 {
		return qlookup.ClampQIndex(o.QIndex)
	}
	return qlookup.QuantizerToQIndex(o.Quantizer)
}
