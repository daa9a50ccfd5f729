package quant

import (
	"math/rand"
	"testing"

	"github.com/deepteams/vp9quant/internal/scan"
)

func TestDequantizeMatchesQuantizerOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for tx := scan.Tx4x4; tx < scan.NumTxSizes; tx++ {
		o := scan.Default(tx)
		for _, qz := range quantizers {
			for iter := 0; iter < 10; iter++ {
				p := lumaPlane(rng.Intn(256))
				in := randomBlock(rng, tx.N(), 8000)
				b := newBlock(tx.N())
				eob := qz.Quantize(in, b.q, b.dq, p, o)

				dq := p.Dequant()
				full := make([]int16, tx.N())
				Dequantize(b.q, full, &dq, tx)
				partial := make([]int16, tx.N())
				DequantizeEOB(b.q, partial, &dq, o, eob)
				for i := range full {
					if full[i] != b.dq[i] {
						t.Fatalf("%v/%v pos %d: Dequantize=%d quantizer dq=%d", tx, qz.Mode(), i, full[i], b.dq[i])
					}
					if partial[i] != b.dq[i] {
						t.Fatalf("%v/%v pos %d: DequantizeEOB=%d quantizer dq=%d", tx, qz.Mode(), i, partial[i], b.dq[i])
					}
				}
			}
		}
	}
}

func TestDequantizeBands(t *testing.T) {
	dq := Row{10, 20, 20, 20, 20, 20, 20, 20}
	q := make([]int16, 16)
	q[0], q[1], q[15] = 3, -2, 1
	out := make([]int16, 16)
	Dequantize(q, out, &dq, scan.Tx4x4)
	if out[0] != 30 || out[1] != -40 || out[15] != 20 {
		t.Errorf("out = %v", out)
	}
}

func TestDequantize32x32Halves(t *testing.T) {
	dq := Row{61, 71, 71, 71, 71, 71, 71, 71}
	q := make([]int16, 1024)
	q[0], q[1], q[2] = 33, -8, -1
	out := make([]int16, 1024)
	Dequantize(q, out, &dq, scan.Tx32x32)
	// Truncation toward zero on both signs.
	if out[0] != 1006 || out[1] != -284 || out[2] != -35 {
		t.Errorf("out[:3] = %v, want [1006 -284 -35]", out[:3])
	}
}

func TestDequantizeClampsCorruptInput(t *testing.T) {
	dq := Row{1336, 1828, 1828, 1828, 1828, 1828, 1828, 1828}
	q := make([]int16, 16)
	q[0], q[1], q[2] = MaxCoeff, MinCoeff, 100
	out := make([]int16, 16)
	Dequantize(q, out, &dq, scan.Tx4x4)
	if out[0] != MaxCoeff || out[1] != MinCoeff || out[2] != MaxCoeff {
		t.Errorf("out[:3] = %v, want saturated", out[:3])
	}
}

func TestDequantizeEOBLeavesTailUntouched(t *testing.T) {
	o := scan.Default(scan.Tx8x8)
	dq := Row{8, 9, 9, 9, 9, 9, 9, 9}
	q := make([]int16, 64)
	for i := range q {
		q[i] = 1
	}
	out := make([]int16, 64)
	for i := range out {
		out[i] = -1234
	}
	const eob = 5
	DequantizeEOB(q, out, &dq, o, eob)
	for i, rc := range o.Scan {
		if i < eob {
			if want := dq[scan.Band(int(rc))]; out[rc] != want {
				t.Errorf("scan %d (rc %d) = %d, want %d", i, rc, out[rc], want)
			}
		} else if out[rc] != -1234 {
			t.Fatalf("scan %d (rc %d) past eob was written: %d", i, rc, out[rc])
		}
	}

	// Out-of-range EOB values are tolerated.
	DequantizeEOB(q, out, &dq, o, -3)
	DequantizeEOB(q, out, &dq, o, 1<<20)
	if out[o.Scan[63]] != 9 {
		t.Errorf("oversized eob did not cover the block")
	}
}
