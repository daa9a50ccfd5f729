package quant

import "github.com/deepteams/vp9quant/internal/qlookup"

const (
	// MaxSegments is the number of segment ids a frame may use.
	MaxSegments = 8
	// MaxPlanes is the number of planes in a frame (Y, U, V).
	MaxPlanes = 3
)

// PlaneKind distinguishes luma from chroma tables.
type PlaneKind int

const (
	Luma PlaneKind = iota
	Chroma
)

func (k PlaneKind) String() string {
	if k == Chroma {
		return "chroma"
	}
	return "luma"
}

// KindOf returns the table kind used by plane index p (0 = Y, 1 = U, 2 = V).
func KindOf(p int) PlaneKind {
	if p == 0 {
		return Luma
	}
	return Chroma
}

// SegmentData carries the per-segment features relevant to quantization.
type SegmentData struct {
	AltQEnabled bool
	AltQ        int  // absolute qindex or delta, see Segmentation.AbsDelta
	Skip        bool // blocks in this segment carry no coefficients
}

// Segmentation describes a frame's segment map features.
type Segmentation struct {
	Enabled  bool
	AbsDelta bool // AltQ values are absolute qindex values
	Data     [MaxSegments]SegmentData
}

func clampSegment(id int) int {
	if id < 0 {
		return 0
	}
	if id >= MaxSegments {
		return MaxSegments - 1
	}
	return id
}

// QIndex resolves the qindex of a segment. A nil or disabled segmentation,
// or a segment without the alternate-quantizer feature, uses base.
func (s *Segmentation) QIndex(segmentID, base int) int {
	if s == nil || !s.Enabled {
		return qlookup.ClampQIndex(base)
	}
	d := &s.Data[clampSegment(segmentID)]
	if !d.AltQEnabled {
		return qlookup.ClampQIndex(base)
	}
	if s.AbsDelta {
		return qlookup.ClampQIndex(d.AltQ)
	}
	return qlookup.ApplyDelta(base, d.AltQ)
}

// Skipped reports whether the segment has the skip feature.
func (s *Segmentation) Skipped(segmentID int) bool {
	if s == nil || !s.Enabled {
		return false
	}
	return s.Data[clampSegment(segmentID)].Skip
}

// Plane is the quantizer state selected for one (segment, plane) pair.
type Plane struct {
	QIndex int
	Kind   PlaneKind
	Tables *PlaneTables
	Skip   bool

	// QuantThresh is zbin squared per band, used by RD code to skip blocks
	// whose energy cannot survive quantization.
	QuantThresh [2]int32
}

// Dequant returns the band-indexed dequantization row.
func (p *Plane) Dequant() Row { return p.Tables.Dequant() }

// SelectPlane resolves the segment qindex once and hands back the matching
// table row. Plane deltas are already folded into the cache's tables, so
// no delta is applied here.
func SelectPlane(c *Cache, seg *Segmentation, segmentID, baseQIndex, plane int) Plane {
	q := seg.QIndex(segmentID, baseQIndex)
	kind := KindOf(plane)
	pt := c.Get(q).Plane(kind)
	p := Plane{
		QIndex: q,
		Kind:   kind,
		Tables: pt,
		Skip:   seg.Skipped(segmentID),
	}
	for b := range p.QuantThresh {
		z := pt.band[b].zbin
		p.QuantThresh[b] = z * z
	}
	return p
}
