package raster

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerChunk keeps tiny rasters on the calling goroutine.
const minRowsPerChunk = 16

// bandsPerWorker oversplits the rows so uneven bands balance out.
const bandsPerWorker = 4

// ParallelRows calls fn over disjoint [y0, y1) row bands covering
// [0, height) and returns once every band is done. Up to
// workers*bandsPerWorker bands are queued and at most workers run at once;
// workers <= 0 means GOMAXPROCS. fn must only write rows inside its band.
func ParallelRows(height, workers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := min(workers*bandsPerWorker, (height+minRowsPerChunk-1)/minRowsPerChunk)
	if workers == 1 || bands <= 1 {
		fn(0, height)
		return
	}

	band := (height + bands - 1) / bands
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	g.Wait() // fn cannot fail
}
