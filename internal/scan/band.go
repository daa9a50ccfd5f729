package scan

// NumBands is the width of the per-plane quantizer rows. Slot 0 holds the
// DC value and slots 1-7 hold the (identical) AC value.
const NumBands = 8

const (
	BandDC = 0
	BandAC = 1
)

var bands [NumTxSizes][]uint8

func initBands() {
	for tx := Tx4x4; tx < NumTxSizes; tx++ {
		b := make([]uint8, tx.N())
		for rc := 1; rc < len(b); rc++ {
			b[rc] = BandAC
		}
		bands[tx] = b
	}
}

// Band maps a raster position to its quantizer row slot.
func Band(rc int) int {
	if rc == 0 {
		return BandDC
	}
	return BandAC
}

// Bands returns the cached position-to-slot table for tx. The returned
// slice is shared and must not be modified.
func Bands(tx TxSize) []uint8 {
	if !tx.Valid() {
		tx = Tx4x4
	}
	return bands[tx]
}
