package hydrology

import (
	"math"
	"sort"

	"worldgen-core/internal/grid"
)

// Direction is a D8 compass bitcode, matching grid.Offset8's order
// (N, NE, E, SE, S, SW, W, NW), plus a sentinel for cells with no
// downhill neighbour (local outlet/sink, should only occur at the
// filled field's global minima once priority flood has run).
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	DirSink
)

// neighborDist is the Euclidean distance weight for each of the eight
// D8 neighbour offsets, diagonal steps costing sqrt(2).
var neighborDist = [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}

// FlowField holds the D8 direction and accumulation grids produced by
// Direction8 and Accumulate.
type FlowField struct {
	Dir   *grid.Grid[uint8]
	Accum *grid.Grid[float32]
}

// Direction8 computes, for every cell, the neighbour maximising
// (filled[c]-filled[n])/dist(n,c); ties are broken by the fixed
// grid.Offset8 compass order. Ocean cells (filled <= 0)
// get DirSink since flow routing only applies to land.
func Direction8(filled *grid.Grid[float32]) *grid.Grid[uint8] {
	w, h := filled.Width, filled.Height
	dir := grid.New[uint8](w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filled.Get(x, y) <= 0 {
				dir.Set(x, y, uint8(DirSink))
				continue
			}
			best := DirSink
			bestSlope := 0.0
			c := float64(filled.Get(x, y))
			for i, nb := range filled.Neighbors8(x, y) {
				nx, ny := nb[0], nb[1]
				if ny < 0 || ny >= h {
					continue
				}
				n := float64(filled.Get(nx, ny))
				slope := (c - n) / neighborDist[i]
				if slope > bestSlope {
					bestSlope = slope
					best = Direction(i)
				}
			}
			dir.Set(x, y, uint8(best))
		}
	}
	return dir
}

// Accumulate walks cells in descending filled-elevation order, adding
// (1 + upstream accumulation) to each cell's downstream neighbour.
// This is a single deterministic pass because Direction8
// produces a forest rooted at sinks: every cell has exactly one
// outgoing edge and no cell can be its own ancestor once ordered by
// strictly descending elevation.
func Accumulate(filled *grid.Grid[float32], dir *grid.Grid[uint8]) *grid.Grid[float32] {
	w, h := filled.Width, filled.Height
	accum := grid.New[float32](w, h)
	cells := accum.Cells()
	for i := range cells {
		cells[i] = 1
	}

	order := make([]int, w*h)
	for i := range order {
		order[i] = i
	}
	fCells := filled.Cells()
	sort.Slice(order, func(i, j int) bool {
		return fCells[order[i]] > fCells[order[j]]
	})

	for _, idx := range order {
		x, y := filled.XY(idx)
		d := Direction(dir.GetIdx(idx))
		if d == DirSink {
			continue
		}
		off := grid.Offset8[d]
		nx, ny := filled.WrapX(x+off[0]), y+off[1]
		if ny < 0 || ny >= h {
			continue
		}
		nIdx := filled.Index(nx, ny)
		cells[nIdx] += cells[idx]
	}
	return accum
}
