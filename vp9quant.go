package vp9quant

import (
	"errors"

	"github.com/deepteams/vp9quant/internal/qlookup"
	"github.com/deepteams/vp9quant/internal/quant"
	"github.com/deepteams/vp9quant/internal/scan"
)

// Errors returned at the API boundary. The quantizers themselves never
// fail; malformed values are clamped.
var (
	ErrUnsupportedBitDepth = errors.New("vp9quant: unsupported bit depth")
	ErrBadSegment          = errors.New("vp9quant: segment id out of range")
	ErrBadPlane            = errors.New("vp9quant: plane index out of range")
	ErrBlockSize           = errors.New("vp9quant: coefficient count does not match transform size")
	ErrBadOptions          = errors.New("vp9quant: invalid options")
)

const (
	// MaxQIndex is the largest internal quantizer index.
	MaxQIndex = qlookup.MaxQ
	// MaxQuantizer is the largest user-facing quantizer level.
	MaxQuantizer = qlookup.MaxQuantizer
	// MaxSegments is the number of segment ids a frame may use.
	MaxSegments = quant.MaxSegments
	// MaxPlanes is the number of planes per frame (Y, U, V).
	MaxPlanes = quant.MaxPlanes
	// MaxDeltaQ bounds the frame-level plane offsets (4-bit magnitude).
	MaxDeltaQ = 15
	// DCTMaxValue bounds every quantized level.
	DCTMaxValue = quant.DCTMaxValue
)

// Types shared with the implementation packages.
type (
	// Mode selects the forward quantization path.
	Mode = quant.Mode
	// DeltaQ holds the frame-level DC/AC offsets for luma DC and chroma.
	DeltaQ = quant.DeltaQ
	// Segmentation carries the per-segment alternate quantizer and skip
	// features.
	Segmentation = quant.Segmentation
	// SegmentData is one segment's feature set.
	SegmentData = quant.SegmentData
	// Plane is the quantizer state selected for a (segment, plane) pair.
	Plane = quant.Plane
	// Row is an 8-wide band-indexed table row.
	Row = quant.Row
	// Quantizer quantizes one transform block.
	Quantizer = quant.Quantizer
	// TxSize is a transform block size.
	TxSize = scan.TxSize
	// TxType is a 2-D transform type; it selects the scan order.
	TxType = scan.TxType
)

const (
	ModeRegular = quant.ModeRegular
	ModeFast    = quant.ModeFast
)

const (
	Tx4x4   = scan.Tx4x4
	Tx8x8   = scan.Tx8x8
	Tx16x16 = scan.Tx16x16
	Tx32x32 = scan.Tx32x32
)

const (
	DCTDCT   = scan.DCTDCT
	ADSTDCT  = scan.ADSTDCT
	DCTADST  = scan.DCTADST
	ADSTADST = scan.ADSTADST
)

// QuantizerToQIndex maps a user-facing quantizer level (clamped to 0-63)
// to a qindex.
func QuantizerToQIndex(level int) int { return qlookup.QuantizerToQIndex(level) }

// QIndexToQuantizer returns the smallest quantizer level whose qindex is at
// least qindex. It is a best-effort inverse of QuantizerToQIndex.
func QIndexToQuantizer(qindex int) int { return qlookup.QIndexToQuantizer(qindex) }

// Impl names the kernel family selected for this CPU, for diagnostics.
func Impl() string { return quant.Impl() }

// ScanOrder returns the scan order and inverse scan for a transform.
// Invalid arguments fall back to the 4x4 DCT order. The slices must not be
// modified.
func ScanOrder(tx TxSize, txType TxType) (scanOrder, iscan []int16) {
	o := scan.Get(tx, txType)
	return o.Scan, o.IScan
}
