package scan

import (
	"errors"
	"testing"
)

func TestOrdersArePermutations(t *testing.T) {
	for tx := Tx4x4; tx < NumTxSizes; tx++ {
		for tt := DCTDCT; tt < NumTxTypes; tt++ {
			t.Run(tx.String()+"/"+tt.String(), func(t *testing.T) {
				o := Get(tx, tt)
				if o.Size != tx {
					t.Fatalf("Size = %v, want %v", o.Size, tx)
				}
				if len(o.Scan) != tx.N() || len(o.IScan) != tx.N() {
					t.Fatalf("len = %d/%d, want %d", len(o.Scan), len(o.IScan), tx.N())
				}
				for i, rc := range o.Scan {
					if int(o.IScan[rc]) != i {
						t.Fatalf("IScan[Scan[%d]] = %d", i, o.IScan[rc])
					}
				}
				if o.Scan[0] != 0 {
					t.Errorf("Scan[0] = %d, want DC first", o.Scan[0])
				}
			})
		}
	}
}

func TestScan4x4Tables(t *testing.T) {
	tests := []struct {
		txType TxType
		want   [16]int16
	}{
		{DCTDCT, defaultScan4x4},
		{ADSTDCT, rowScan4x4},
		{DCTADST, colScan4x4},
		{ADSTADST, defaultScan4x4},
	}
	for _, tt := range tests {
		o := Get(Tx4x4, tt.txType)
		for i := range tt.want {
			if o.Scan[i] != tt.want[i] {
				t.Errorf("%v: Scan[%d] = %d, want %d", tt.txType, i, o.Scan[i], tt.want[i])
			}
		}
	}
}

func TestScan32x32SharedAcrossTypes(t *testing.T) {
	def := Get(Tx32x32, DCTDCT)
	for tt := ADSTDCT; tt < NumTxTypes; tt++ {
		if Get(Tx32x32, tt) != def {
			t.Errorf("32x32 %v does not use the default order", tt)
		}
	}
}

func TestScanTableHeads(t *testing.T) {
	tests := []struct {
		tx     TxSize
		txType TxType
		head   []int16
	}{
		{Tx8x8, DCTDCT, []int16{0, 8, 1, 16, 9, 2, 17, 24, 10, 3, 18, 25, 32, 11, 4, 26}},
		{Tx8x8, ADSTDCT, []int16{0, 1, 2, 8, 9, 3, 16, 10, 4, 17, 11, 24, 5, 18, 25, 12}},
		{Tx8x8, DCTADST, []int16{0, 8, 16, 1, 24, 9, 32, 17, 2, 40, 25, 10, 33, 18, 48, 3}},
		{Tx8x8, ADSTADST, []int16{0, 8, 1, 16, 9, 2, 17, 24, 10, 3, 18, 25, 32, 11, 4, 26}},
		{Tx16x16, DCTDCT, []int16{0, 16, 1, 32, 17, 2, 48, 33, 18, 3, 64, 34, 49, 19, 65, 80}},
		{Tx16x16, ADSTDCT, []int16{0, 1, 2, 16, 3, 17, 4, 18, 32, 5, 33, 19, 6, 34, 48, 20}},
		{Tx16x16, DCTADST, []int16{0, 16, 32, 48, 1, 64, 17, 80, 33, 96, 49, 2, 65, 112, 18, 81}},
		{Tx32x32, DCTDCT, []int16{0, 32, 1, 64, 33, 2, 96, 65, 34, 128, 3, 97, 66, 160, 129, 35}},
	}
	for _, tt := range tests {
		o := Get(tt.tx, tt.txType)
		for i, want := range tt.head {
			if o.Scan[i] != want {
				t.Errorf("%v/%v: Scan[%d] = %d, want %d", tt.tx, tt.txType, i, o.Scan[i], want)
			}
		}
	}
}

func TestScanTableTails(t *testing.T) {
	tests := []struct {
		tx     TxSize
		txType TxType
		tail   []int16
	}{
		{Tx8x8, DCTDCT, []int16{39, 61, 54, 47, 62, 55, 63}},
		{Tx8x8, ADSTDCT, []int16{60, 39, 47, 54, 61, 55, 62, 63}},
		{Tx8x8, DCTADST, []int16{31, 61, 39, 54, 47, 62, 55, 63}},
		{Tx16x16, DCTDCT, []int16{207, 222, 253, 238, 223, 254, 239, 255}},
		{Tx16x16, ADSTDCT, []int16{252, 222, 253, 223, 238, 239, 254, 255}},
		{Tx16x16, DCTADST, []int16{253, 222, 238, 207, 254, 223, 239, 255}},
		{Tx32x32, DCTDCT, []int16{1020, 989, 958, 927, 1021, 990, 959, 1022, 991, 1023}},
	}
	for _, tt := range tests {
		o := Get(tt.tx, tt.txType)
		off := len(o.Scan) - len(tt.tail)
		for i, want := range tt.tail {
			if o.Scan[off+i] != want {
				t.Errorf("%v/%v: Scan[%d] = %d, want %d", tt.tx, tt.txType, off+i, o.Scan[off+i], want)
			}
		}
	}
}

func TestIScanPositions(t *testing.T) {
	// Spot checks of scan index by raster position.
	tests := []struct {
		tx     TxSize
		txType TxType
		rc     int
		want   int16
	}{
		{Tx8x8, DCTDCT, 24, 7},
		{Tx8x8, DCTDCT, 63, 63},
		{Tx8x8, ADSTDCT, 24, 11},
		{Tx8x8, DCTADST, 1, 3},
		{Tx16x16, DCTDCT, 80, 15},
		{Tx16x16, DCTADST, 48, 3},
		{Tx32x32, DCTDCT, 128, 9},
		{Tx32x32, DCTDCT, 640, 240},
	}
	for _, tt := range tests {
		if got := Get(tt.tx, tt.txType).IScan[tt.rc]; got != tt.want {
			t.Errorf("%v/%v: IScan[%d] = %d, want %d", tt.tx, tt.txType, tt.rc, got, tt.want)
		}
	}
}

func TestScanTypesShareDefault(t *testing.T) {
	for tx := Tx4x4; tx < Tx32x32; tx++ {
		if Get(tx, ADSTADST) != Default(tx) {
			t.Errorf("%v: ADST_ADST does not use the default order", tx)
		}
		if Get(tx, ADSTDCT) == Default(tx) || Get(tx, DCTADST) == Default(tx) {
			t.Errorf("%v: row or column order aliases the default", tx)
		}
	}
}

func TestFromScan(t *testing.T) {
	o, err := FromScan(defaultScan4x4[:])
	if err != nil {
		t.Fatalf("FromScan: %v", err)
	}
	if o.Size != Tx4x4 {
		t.Errorf("Size = %v", o.Size)
	}

	if _, err := FromScan(make([]int16, 15)); !errors.Is(err, ErrBadLength) {
		t.Errorf("short order: err = %v, want ErrBadLength", err)
	}
	dup := defaultScan4x4
	dup[3] = dup[2]
	if _, err := FromScan(dup[:]); !errors.Is(err, ErrNotPermutation) {
		t.Errorf("duplicate: err = %v, want ErrNotPermutation", err)
	}
	neg := defaultScan4x4
	neg[5] = -1
	if _, err := FromScan(neg[:]); !errors.Is(err, ErrNotPermutation) {
		t.Errorf("negative: err = %v, want ErrNotPermutation", err)
	}
}

func TestFromScanCopies(t *testing.T) {
	s := defaultScan4x4
	o, err := FromScan(s[:])
	if err != nil {
		t.Fatal(err)
	}
	s[1] = 99
	if o.Scan[1] != 4 {
		t.Errorf("order aliases caller slice: Scan[1] = %d", o.Scan[1])
	}
}

func TestGetFallback(t *testing.T) {
	if Get(TxSize(9), TxType(-1)) != Default(Tx4x4) {
		t.Error("invalid arguments did not fall back to 4x4 default")
	}
}

func TestBands(t *testing.T) {
	for tx := Tx4x4; tx < NumTxSizes; tx++ {
		b := Bands(tx)
		if len(b) != tx.N() {
			t.Fatalf("%v: len = %d", tx, len(b))
		}
		for rc, v := range b {
			if int(v) != Band(rc) {
				t.Fatalf("%v: Bands[%d] = %d, Band = %d", tx, rc, v, Band(rc))
			}
			if int(v) >= NumBands {
				t.Fatalf("%v: slot %d out of row", tx, v)
			}
		}
	}
	if Band(0) != BandDC || Band(1) != BandAC || Band(1023) != BandAC {
		t.Error("Band DC/AC mapping wrong")
	}
}

func TestSizeForN(t *testing.T) {
	for tx := Tx4x4; tx < NumTxSizes; tx++ {
		got, err := SizeForN(tx.N())
		if err != nil || got != tx {
			t.Errorf("SizeForN(%d) = %v, %v", tx.N(), got, err)
		}
	}
	if _, err := SizeForN(32); !errors.Is(err, ErrBadLength) {
		t.Errorf("SizeForN(32) err = %v", err)
	}
}
