package quant

import (
	"encoding/binary"
	"testing"

	"github.com/deepteams/vp9quant/internal/scan"
)

// FuzzQuantize feeds arbitrary coefficient bytes through every kernel and
// checks the accelerated and reference paths agree, the EOB is consistent
// with the output, and levels stay in range.
func FuzzQuantize(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint8(0), []byte{100, 0})
	f.Add(uint8(255), uint8(3), uint8(2), []byte{0xff, 0x7f, 0x00, 0x80})
	f.Add(uint8(60), uint8(2), uint8(1), make([]byte, 512))

	f.Fuzz(func(t *testing.T, qindex, txb, ttb uint8, data []byte) {
		tx := scan.TxSize(txb % uint8(scan.NumTxSizes))
		o := scan.Get(tx, scan.TxType(ttb%uint8(scan.NumTxTypes)))
		n := tx.N()
		in := make([]int16, n)
		for i := 0; i < n && 2*i+1 < len(data); i++ {
			in[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
		}
		tab := BuildTables(int(qindex), DeltaQ{})

		for _, k := range kernelPairs {
			if k.tx32 != (tx == scan.Tx32x32) {
				continue
			}
			compareKernels(t, k, in, &tab.Y, o)

			b := newBlock(n)
			eob := k.ref(in, b.q, b.dq, &tab.Y, o)
			if eob < 0 || eob > n {
				t.Fatalf("%s: eob %d out of [0, %d]", k.name, eob, n)
			}
			if eob > 0 && b.q[o.Scan[eob-1]] == 0 {
				t.Fatalf("%s: eob %d points at a zero level", k.name, eob)
			}
			for i := eob; i < n; i++ {
				if b.q[o.Scan[i]] != 0 {
					t.Fatalf("%s: nonzero level at scan %d past eob %d", k.name, i, eob)
				}
			}
			for i, v := range b.q {
				if v > DCTMaxValue || v < -DCTMaxValue {
					t.Fatalf("%s: level %d at %d out of range", k.name, v, i)
				}
			}
		}
	})
}
