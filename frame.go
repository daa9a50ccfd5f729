package vp9quant

import (
	"fmt"

	"github.com/deepteams/vp9quant/internal/qlookup"
	"github.com/deepteams/vp9quant/internal/quant"
)

// Frame holds the quantizer state of one frame: the base qindex, the plane
// offsets, the segmentation and the selected plane tables for every
// (segment, plane) pair. A Frame is immutable and safe for concurrent use.
type Frame struct {
	base      int
	delta     DeltaQ
	seg       Segmentation
	mode      Mode
	quantizer Quantizer
	lossless  bool
	planes    [MaxSegments][MaxPlanes]Plane
}

// NewFrame validates opts and selects the plane tables for every segment.
// A nil opts uses DefaultOptions.
func NewFrame(opts *Options) (*Frame, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := &Frame{
		base:      opts.baseQIndex(),
		delta:     opts.DeltaQ,
		mode:      opts.Mode,
		quantizer: quant.New(opts.Mode),
	}
	var seg *Segmentation
	if opts.Segmentation != nil {
		f.seg = *opts.Segmentation
		seg = &f.seg
	}
	f.lossless = qlookup.Lossless(f.base, f.delta.YDC, f.delta.UVDC, f.delta.UVAC)

	cache := quant.SharedCache(f.delta)
	for s := 0; s < MaxSegments; s++ {
		for p := 0; p < MaxPlanes; p++ {
			f.planes[s][p] = quant.SelectPlane(cache, seg, s, f.base, p)
		}
	}
	return f, nil
}

// BaseQIndex returns the frame's base qindex.
func (f *Frame) BaseQIndex() int { return f.base }

// DeltaQ returns the frame's plane offsets.
func (f *Frame) DeltaQ() DeltaQ { return f.delta }

// Mode returns the forward quantization path.
func (f *Frame) Mode() Mode { return f.mode }

// Quantizer returns the forward quantizer selected by Mode.
func (f *Frame) Quantizer() Quantizer { return f.quantizer }

// Lossless reports whether the frame codes losslessly: base qindex 0 and
// no plane offsets.
func (f *Frame) Lossless() bool { return f.lossless }

// QIndex returns the resolved qindex of a segment. Segment ids outside
// [0, MaxSegments) are clamped.
func (f *Frame) QIndex(segment int) int {
	if segment < 0 {
		segment = 0
	} else if segment >= MaxSegments {
		segment = MaxSegments - 1
	}
	return f.planes[segment][0].QIndex
}

// Plane returns the quantizer state for a segment and plane
// (0 = Y, 1 = U, 2 = V). The returned value must not be modified.
func (f *Frame) Plane(segment, plane int) (*Plane, error) {
	if segment < 0 || segment >= MaxSegments {
		return nil, fmt.Errorf("%w: %d", ErrBadSegment, segment)
	}
	if plane < 0 || plane >= MaxPlanes {
		return nil, fmt.Errorf("%w: %d", ErrBadPlane, plane)
	}
	return &f.planes[segment][plane], nil
}
