package surface

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into contiguous chunks and runs f once per
// chunk on its own worker. Each chunk is owned by exactly one worker,
// so callers writing only inside their [lo, hi) range need no locking.
// ParallelFor returns after every chunk has completed.
func ParallelFor(n int, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			f(lo, hi)
			return nil
		})
	}
	// The workers only ever return nil; Wait is for completion.
	_ = g.Wait()
}
