package vp9quant

import (
	"fmt"

	"github.com/deepteams/vp9quant/internal/pool"
	"github.com/deepteams/vp9quant/internal/quant"
	"github.com/deepteams/vp9quant/internal/scan"
)

// Job describes one transform block to quantize or reconstruct.
type Job struct {
	Segment int
	Plane   int
	Tx      TxSize
	Type    TxType

	// Coeff holds Tx.N() values in raster order: transform coefficients
	// for QuantizeBlock, quantized levels for Reconstruct.
	Coeff []int16
}

// Block is the result of quantizing or reconstructing one transform block.
// Its buffers come from a pool; call Release when done with them.
type Block struct {
	Tx   TxSize
	Type TxType

	// QCoeff holds the quantized levels in raster order.
	QCoeff []int16
	// DQCoeff holds the reconstructed coefficients in raster order.
	DQCoeff []int16
	// EOB is one past the last nonzero level in scan order, or 0.
	EOB int
}

// Release returns the block's buffers to the pool. The block must not be
// used afterwards. Release on a nil block is a no-op.
func (b *Block) Release() {
	if b == nil {
		return
	}
	pool.PutInt16(b.QCoeff)
	pool.PutInt16(b.DQCoeff)
	b.QCoeff, b.DQCoeff = nil, nil
}

func newBlock(tx TxSize, txType TxType) *Block {
	n := tx.N()
	return &Block{
		Tx:      tx,
		Type:    txType,
		QCoeff:  pool.GetInt16(n),
		DQCoeff: pool.GetInt16(n),
	}
}

// resolve validates a job and returns its plane and scan order.
func (f *Frame) resolve(job *Job) (*Plane, *scan.Order, error) {
	p, err := f.Plane(job.Segment, job.Plane)
	if err != nil {
		return nil, nil, err
	}
	if !job.Tx.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown transform size %d", ErrBlockSize, int(job.Tx))
	}
	if len(job.Coeff) != job.Tx.N() {
		return nil, nil, fmt.Errorf("%w: got %d, %v needs %d", ErrBlockSize, len(job.Coeff), job.Tx, job.Tx.N())
	}
	return p, scan.Get(job.Tx, job.Type), nil
}

// QuantizeBlock quantizes job.Coeff with the frame's quantizer.
func (f *Frame) QuantizeBlock(job *Job) (*Block, error) {
	p, o, err := f.resolve(job)
	if err != nil {
		return nil, err
	}
	return f.quantizeResolved(p, o, job), nil
}

// quantizeResolved quantizes a job already checked by resolve.
func (f *Frame) quantizeResolved(p *Plane, o *scan.Order, job *Job) *Block {
	b := newBlock(job.Tx, job.Type)
	b.EOB = f.quantizer.Quantize(job.Coeff, b.QCoeff, b.DQCoeff, p, o)
	return b
}

// Reconstruct dequantizes the levels in job.Coeff the way a decoder does:
// only the first eob scan positions are read. A negative eob reconstructs
// the whole block and recomputes the EOB from the levels.
func (f *Frame) Reconstruct(job *Job, eob int) (*Block, error) {
	p, o, err := f.resolve(job)
	if err != nil {
		return nil, err
	}
	n := job.Tx.N()
	if eob < 0 || eob > n {
		eob = lastNonZero(job.Coeff, o) + 1
	}
	b := newBlock(job.Tx, job.Type)
	b.EOB = eob
	for i := 0; i < eob; i++ {
		rc := o.Scan[i]
		b.QCoeff[rc] = job.Coeff[rc]
	}
	dq := p.Dequant()
	quant.DequantizeEOB(b.QCoeff, b.DQCoeff, &dq, o, eob)
	return b, nil
}

func lastNonZero(levels []int16, o *scan.Order) int {
	for i := len(o.Scan) - 1; i >= 0; i-- {
		if levels[o.Scan[i]] != 0 {
			return i
		}
	}
	return -1
}
