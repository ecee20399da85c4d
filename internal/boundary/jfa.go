package boundary

import (
	"context"
	"math"

	"worldgen-core/internal/grid"
	"worldgen-core/internal/parallel"
)

// JFA computes DistanceField by jump flooding: boundary cells
// seed their own coordinates, then step sizes W/2, W/4, ..., 1 (plus a
// final step=1 cleanup pass) propagate the nearest seed to every cell.
// Passes are double-buffered so a pass only ever reads the previous
// pass's result, keeping per-cell work order-independent and safe to
// parallelise.
func JFA(ctx context.Context, ext *Extraction) (*Field, error) {
	w, h := ext.Width, ext.Height

	nearest := make([]int32, w*h)
	for i := range nearest {
		if ext.Class[i] != None {
			nearest[i] = int32(i)
		} else {
			nearest[i] = -1
		}
	}

	for _, step := range jfaSteps(w) {
		next := make([]int32, w*h)
		copy(next, nearest)
		err := parallel.ForRows(ctx, h, func(y int) error {
			for x := 0; x < w; x++ {
				idx := y*w + x
				best := nearest[idx]
				bestDist := math.Inf(1)
				if best >= 0 {
					bestDist = seedDist(w, h, x, y, best)
				}
				for _, off := range grid.Offset8 {
					nx := wrapX(x+off[0]*step, w)
					ny := y + off[1]*step
					if ny < 0 || ny >= h {
						continue
					}
					cand := nearest[ny*w+nx]
					if cand < 0 {
						continue
					}
					d := seedDist(w, h, x, y, cand)
					if d < bestDist {
						bestDist = d
						best = cand
					}
				}
				next[idx] = best
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		nearest = next
	}

	field := newField(w, h)
	for i := range field.Distance {
		seed := nearest[i]
		if seed < 0 {
			// No boundary exists at all (e.g. a single-plate world); every
			// distance is defensively clamped to 0 rather than left at +Inf.
			continue
		}
		x, y := i%w, i/w
		field.Distance[i] = float32(seedDist(w, h, x, y, seed))
		field.Class[i] = ext.Class[seed]
		field.Major[i] = ext.Major[seed]
		field.Sign[i] = ext.Sign[seed]
		field.SegmentID[i] = ext.SegmentID[seed]
	}
	return field, nil
}

// jfaSteps returns the descending power-of-two step schedule plus the
// final step=1 cleanup pass: W/2, W/4, ..., 1, 1.
func jfaSteps(w int) []int {
	steps := make([]int, 0, 8)
	s := w / 2
	if s < 1 {
		s = 1
	}
	for s >= 1 {
		steps = append(steps, s)
		s /= 2
	}
	steps = append(steps, 1)
	return steps
}

// seedDist is the toroidal (wrap-on-x, clamp-on-y) Euclidean distance from
// (x, y) to the cell at flat index seedIdx.
func seedDist(w, h, x, y int, seedIdx int32) float64 {
	sx, sy := int(seedIdx)%w, int(seedIdx)/w
	dx := math.Abs(float64(x - sx))
	if dx > float64(w)/2 {
		dx = float64(w) - dx
	}
	dy := float64(y - sy)
	return math.Hypot(dx, dy)
}

func wrapX(x, w int) int {
	x %= w
	if x < 0 {
		x += w
	}
	return x
}
