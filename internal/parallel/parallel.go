// Package parallel provides the data-parallel work-stealing dispatch used by
// the pipeline's per-row kernels (temperature, precipitation, JFA passes);
// elevation synthesis runs serially and does not use it. It wraps
// golang.org/x/sync/errgroup with a GOMAXPROCS-bounded semaphore so callers
// never have to hand-roll a sync.WaitGroup pool.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForRows runs fn(row) for row in [0, rows) across a bounded worker pool.
// Rows are assumed independent; fn may do whatever serial work it needs
// within a single row. The first error returned by any fn cancels the rest
// and is returned to the caller.
func ForRows(ctx context.Context, rows int, fn func(row int) error) error {
	return forN(ctx, rows, fn)
}

// ForTiles partitions an h-row grid into tiles of tileRows consecutive rows
// and runs fn(startRow, endRow) per tile, for cases where per-row overhead
// (e.g. re-forking an RNG stream) is best amortised across a batch of rows.
func ForTiles(ctx context.Context, h, tileRows int, fn func(startRow, endRow int) error) error {
	if tileRows <= 0 {
		tileRows = 1
	}
	numTiles := (h + tileRows - 1) / tileRows
	return forN(ctx, numTiles, func(t int) error {
		start := t * tileRows
		end := start + tileRows
		if end > h {
			end = h
		}
		return fn(start, end)
	})
}

// ForCells runs fn(idx) for idx in [0, n) across a bounded worker pool, for
// flat per-cell kernels where there is no meaningful row/tile grouping. The
// pipeline's own kernels (temperature, precipitation, JFA passes) use
// ForRows.
func ForCells(ctx context.Context, n int, fn func(idx int) error) error {
	return forN(ctx, n, fn)
}

func forN(ctx context.Context, n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}
