package vm

import (
	"fmt"
	"sync"

	"github.com/vybium/airvm/internal/airvm/field"
	"github.com/vybium/airvm/internal/airvm/program"
)

// EvalRows evaluates block against ctx for every row in [lo, hi), splitting
// the range across workers goroutines. This is safe exactly under the
// condition spec §5 states: concurrent writes are permitted only when row
// shards are disjoint, which a contiguous partition of [lo, hi) guarantees
// for every row-indexed destination (every Write for a dim=3 value still
// occupies three cells within the same row). "tmp" is the one section this
// does not hold for: its descriptors always compile with Stride: 0, so it
// is addressed independently of the row index — every worker gets its own
// private "tmp" buffer (see Context.clonePrivateTmp) rather than sharing
// ctx's, so workers never race on the same tmp cells.
//
// Results are returned in row order; a worker's failure aborts the whole
// call and the first error encountered (by row index) is returned.
func EvalRows(block *program.Block, ctx *Context, lo, hi uint64, workers int) ([]field.Fv, error) {
	if hi < lo {
		return nil, fmt.Errorf("vm: invalid row range [%d, %d)", lo, hi)
	}
	n := hi - lo
	results := make([]field.Fv, n)
	if n == 0 {
		return results, nil
	}
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > n {
		workers = int(n)
	}

	chunkSize := (n + uint64(workers) - 1) / uint64(workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			start := uint64(workerID) * chunkSize
			if start >= n {
				return
			}
			end := start + chunkSize
			if end > n {
				end = n
			}

			workerCtx := ctx.clonePrivateTmp()
			for j := start; j < end; j++ {
				row := lo + j
				v, err := Eval(block, workerCtx, row)
				if err != nil {
					errs[workerID] = fmt.Errorf("row %d: %w", row, err)
					return
				}
				results[j] = v
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
