// Package scan provides the coefficient scan orders used to serialize a
// transform block and to measure its end-of-block position.
//
// Orders are process-wide constants built once at package init and never
// mutated afterwards, so they are safe to share between goroutines.
package scan

import (
	"errors"
	"fmt"
)

var (
	ErrBadLength      = errors.New("scan: order length does not match a transform size")
	ErrNotPermutation = errors.New("scan: order is not a permutation")
)

// TxSize is a square transform size.
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
	NumTxSizes
)

// Width returns the side length of the transform in coefficients.
func (t TxSize) Width() int { return 4 << uint(t) }

// N returns the number of coefficients in the transform block.
func (t TxSize) N() int { return t.Width() * t.Width() }

// Valid reports whether t names a supported transform size.
func (t TxSize) Valid() bool { return t >= Tx4x4 && t < NumTxSizes }

func (t TxSize) String() string {
	switch t {
	case Tx4x4:
		return "4x4"
	case Tx8x8:
		return "8x8"
	case Tx16x16:
		return "16x16"
	case Tx32x32:
		return "32x32"
	}
	return fmt.Sprintf("TxSize(%d)", int(t))
}

// SizeForN returns the transform size holding n coefficients.
func SizeForN(n int) (TxSize, error) {
	for t := Tx4x4; t < NumTxSizes; t++ {
		if t.N() == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrBadLength, n)
}

// TxType is the pair of 1-D transforms (vertical, horizontal) applied to a
// block. It selects which scan order is used.
type TxType int

const (
	DCTDCT   TxType = iota // DCT in both directions
	ADSTDCT                // ADST vertical, DCT horizontal
	DCTADST                // DCT vertical, ADST horizontal
	ADSTADST               // ADST in both directions
	NumTxTypes
)

func (t TxType) String() string {
	switch t {
	case DCTDCT:
		return "dct_dct"
	case ADSTDCT:
		return "adst_dct"
	case DCTADST:
		return "dct_adst"
	case ADSTADST:
		return "adst_adst"
	}
	return fmt.Sprintf("TxType(%d)", int(t))
}

// Order is a scan permutation and its inverse.
//
// Scan[i] is the raster position visited at scan index i; IScan[rc] is the
// scan index of raster position rc.
type Order struct {
	Size  TxSize
	Scan  []int16
	IScan []int16
}

// FromScan validates a permutation of raster positions and returns the
// corresponding Order. It lets callers supply their own tables.
func FromScan(s []int16) (*Order, error) {
	tx, err := SizeForN(len(s))
	if err != nil {
		return nil, err
	}
	iscan := make([]int16, len(s))
	seen := make([]bool, len(s))
	for i, rc := range s {
		if rc < 0 || int(rc) >= len(s) || seen[rc] {
			return nil, fmt.Errorf("%w: position %d at index %d", ErrNotPermutation, rc, i)
		}
		seen[rc] = true
		iscan[rc] = int16(i)
	}
	sc := make([]int16, len(s))
	copy(sc, s)
	return &Order{Size: tx, Scan: sc, IScan: iscan}, nil
}

// mustFromScan is FromScan for the built-in tables.
func mustFromScan(s []int16) *Order {
	o, err := FromScan(s)
	if err != nil {
		panic(err)
	}
	return o
}

// orders is indexed by [TxSize][TxType].
var orders [NumTxSizes][NumTxTypes]*Order

func init() {
	set := func(tx TxSize, def, row, col []int16) {
		d := mustFromScan(def)
		orders[tx] = [NumTxTypes]*Order{d, mustFromScan(row), mustFromScan(col), d}
	}
	set(Tx4x4, defaultScan4x4[:], rowScan4x4[:], colScan4x4[:])
	set(Tx8x8, defaultScan8x8[:], rowScan8x8[:], colScan8x8[:])
	set(Tx16x16, defaultScan16x16[:], rowScan16x16[:], colScan16x16[:])

	// 32x32 has no ADST, every type uses the default order.
	def32 := mustFromScan(defaultScan32x32[:])
	orders[Tx32x32] = [NumTxTypes]*Order{def32, def32, def32, def32}

	initBands()
}

// Get returns the built-in scan order for a transform size and type.
// Invalid arguments fall back to the 4x4 / DCT_DCT order.
func Get(tx TxSize, txType TxType) *Order {
	if !tx.Valid() {
		tx = Tx4x4
	}
	if txType < 0 || txType >= NumTxTypes {
		txType = DCTDCT
	}
	return orders[tx][txType]
}

// Default returns the default (DCT_DCT) order for tx.
func Default(tx TxSize) *Order {
	return Get(tx, DCTDCT)
}
