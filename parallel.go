package vp9quant

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/deepteams/vp9quant/internal/scan"
)

// minParallelJobs is the batch size below which QuantizeBlocks stays on the
// calling goroutine.
const minParallelJobs = 16

// QuantizeBlocks quantizes a batch of jobs, fanning out over GOMAXPROCS
// workers. Results are returned in job order. All jobs are validated before
// any work starts; on error no blocks are returned.
func (f *Frame) QuantizeBlocks(jobs []Job) ([]*Block, error) {
	type resolved struct {
		p *Plane
		o *scan.Order
	}
	res := make([]resolved, len(jobs))
	for i := range jobs {
		p, o, err := f.resolve(&jobs[i])
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		res[i] = resolved{p, o}
	}

	out := make([]*Block, len(jobs))
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}
	if len(jobs) < minParallelJobs || numWorkers < 2 {
		for i := range jobs {
			out[i] = f.quantizeResolved(res[i].p, res[i].o, &jobs[i])
		}
		return out, nil
	}

	// Workers claim jobs through an atomic counter; the Frame is read-only
	// and each job writes only its own slot of out.
	var next atomic.Int32
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(jobs) {
					return
				}
				out[i] = f.quantizeResolved(res[i].p, res[i].o, &jobs[i])
			}
		}()
	}
	wg.Wait()
	return out, nil
}

// ReleaseAll releases every block in blocks.
func ReleaseAll(blocks []*Block) {
	for _, b := range blocks {
		b.Release()
	}
}
