package vp9quant

import (
	"errors"
	"testing"

	"github.com/deepteams/vp9quant/internal/qlookup"
)

func TestDefaultFrame(t *testing.T) {
	f, err := NewFrame(nil)
	if err != nil {
		t.Fatalf("NewFrame(nil): %v", err)
	}
	if f.BaseQIndex() != 128 {
		t.Errorf("BaseQIndex = %d, want 128", f.BaseQIndex())
	}
	if f.Mode() != ModeRegular || f.Quantizer().Mode() != ModeRegular {
		t.Errorf("Mode = %v, want regular", f.Mode())
	}
	if f.Lossless() {
		t.Error("default frame reported lossless")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
		want   error
	}{
		{"default", func(o *Options) {}, nil},
		{"zero bit depth", func(o *Options) { o.BitDepth = 0 }, nil},
		{"10-bit", func(o *Options) { o.BitDepth = 10 }, ErrUnsupportedBitDepth},
		{"quantizer high", func(o *Options) { o.Quantizer = 64 }, ErrBadOptions},
		{"quantizer ignored with qindex", func(o *Options) { o.Quantizer = 99; o.QIndex = 10 }, nil},
		{"qindex high", func(o *Options) { o.QIndex = 256 }, ErrBadOptions},
		{"delta high", func(o *Options) { o.DeltaQ.UVAC = 16 }, ErrBadOptions},
		{"delta low", func(o *Options) { o.DeltaQ.YDC = -16 }, ErrBadOptions},
		{"delta edge", func(o *Options) { o.DeltaQ.UVDC = -15 }, nil},
		{"mode", func(o *Options) { o.Mode = Mode(7) }, ErrBadOptions},
		{"segment altq", func(o *Options) {
			o.Segmentation = &Segmentation{Enabled: true}
			o.Segmentation.Data[2] = SegmentData{AltQEnabled: true, AltQ: 300}
		}, ErrBadOptions},
		{"segment altq disabled feature", func(o *Options) {
			o.Segmentation = &Segmentation{Enabled: true}
			o.Segmentation.Data[2] = SegmentData{AltQ: 300}
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(o)
			err := o.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
			if _, err := NewFrame(o); !errors.Is(err, tt.want) {
				t.Fatalf("NewFrame = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrameBaseQIndex(t *testing.T) {
	tests := []struct {
		quantizer, qindex int
		want              int
	}{
		{0, -1, 0},
		{32, -1, 128},
		{62, -1, 249},
		{63, -1, 255},
		{63, 17, 17},
		{0, 0, 0},
	}
	for _, tt := range tests {
		f, err := NewFrame(&Options{Quantizer: tt.quantizer, QIndex: tt.qindex})
		if err != nil {
			t.Fatal(err)
		}
		if f.BaseQIndex() != tt.want {
			t.Errorf("Quantizer %d QIndex %d: base = %d, want %d", tt.quantizer, tt.qindex, f.BaseQIndex(), tt.want)
		}
	}
}

func TestFrameLossless(t *testing.T) {
	f, _ := NewFrame(&Options{})
	if !f.Lossless() {
		t.Error("qindex 0 without deltas is lossless")
	}
	f, _ = NewFrame(&Options{DeltaQ: DeltaQ{UVAC: 1}})
	if f.Lossless() {
		t.Error("a plane offset disables lossless")
	}
	f, _ = NewFrame(&Options{QIndex: 1})
	if f.Lossless() {
		t.Error("qindex 1 is not lossless")
	}
}

func TestFramePlaneBounds(t *testing.T) {
	f, _ := NewFrame(nil)
	if _, err := f.Plane(-1, 0); !errors.Is(err, ErrBadSegment) {
		t.Errorf("segment -1: %v", err)
	}
	if _, err := f.Plane(MaxSegments, 0); !errors.Is(err, ErrBadSegment) {
		t.Errorf("segment 8: %v", err)
	}
	if _, err := f.Plane(0, 3); !errors.Is(err, ErrBadPlane) {
		t.Errorf("plane 3: %v", err)
	}
	if _, err := f.Plane(7, 2); err != nil {
		t.Errorf("segment 7 plane 2: %v", err)
	}
}

func TestFrameSegmentation(t *testing.T) {
	seg := &Segmentation{Enabled: true}
	seg.Data[1] = SegmentData{AltQEnabled: true, AltQ: -30}
	seg.Data[2] = SegmentData{AltQEnabled: true, AltQ: 200}
	seg.Data[3].Skip = true

	f, err := NewFrame(&Options{QIndex: 100, Segmentation: seg})
	if err != nil {
		t.Fatal(err)
	}
	// The frame keeps its own copy.
	seg.Data[1].AltQ = 0

	want := []int{100, 70, 255, 100, 100, 100, 100, 100}
	for s, w := range want {
		if got := f.QIndex(s); got != w {
			t.Errorf("QIndex(%d) = %d, want %d", s, got, w)
		}
	}
	if f.QIndex(-4) != 100 || f.QIndex(99) != 100 {
		t.Error("out-of-range segment ids not clamped")
	}
	p, _ := f.Plane(3, 1)
	if !p.Skip {
		t.Error("segment 3 skip feature lost")
	}
}

func TestFramePlaneDeltasAppliedOnce(t *testing.T) {
	d := DeltaQ{YDC: -4, UVDC: 6, UVAC: -9}
	f, err := NewFrame(&Options{QIndex: 150, DeltaQ: d})
	if err != nil {
		t.Fatal(err)
	}
	for plane := 0; plane < MaxPlanes; plane++ {
		p, _ := f.Plane(0, plane)
		dq := p.Dequant()
		wantDC, wantAC := qlookup.DCQuant(150, d.YDC), qlookup.ACQuant(150, 0)
		if plane > 0 {
			wantDC, wantAC = qlookup.DCQuant(150, d.UVDC), qlookup.ACQuant(150, d.UVAC)
		}
		if dq[0] != wantDC || dq[1] != wantAC {
			t.Errorf("plane %d: dequant %d/%d, want %d/%d", plane, dq[0], dq[1], wantDC, wantAC)
		}
	}
	u, _ := f.Plane(0, 1)
	v, _ := f.Plane(0, 2)
	if u.Tables != v.Tables {
		t.Error("U and V do not share chroma tables")
	}
}
