package hydrology

import "worldgen-core/internal/grid"

// RiverConfig bundles the tunables for river extraction and the
// upstream extension pass.
type RiverConfig struct {
	Threshold        float64
	MaxUpstreamCells int
}

const defaultMaxUpstreamCells = 64

// ExtractRivers marks a cell as river when accum >= Threshold *
// f(precipitation), where f scales the threshold down in wetter
// regions so equally-sized drainage basins produce denser networks
// where rainfall is higher, then extends each river
// upstream from its highest-accumulation headwater by at most
// MaxUpstreamCells cells into sub-threshold territory so networks
// don't end in an abrupt, unnatural truncation.
func ExtractRivers(cfg RiverConfig, accum *grid.Grid[float32], dir *grid.Grid[uint8], precip *grid.Grid[float32]) *grid.Grid[uint8] {
	w, h := accum.Width, accum.Height
	river := grid.New[uint8](w, h)

	maxUp := cfg.MaxUpstreamCells
	if maxUp <= 0 {
		maxUp = defaultMaxUpstreamCells
	}

	upstream := buildUpstream(dir, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := accum.Index(x, y)
			threshold := cfg.Threshold * precipFactor(precip.GetIdx(idx))
			if float64(accum.GetIdx(idx)) >= threshold {
				river.SetIdx(idx, 1)
			}
		}
	}

	// A headwater is a river cell that no other river cell drains into.
	headwaters := []int{}
	for idx := range upstream {
		if river.GetIdx(idx) == 0 {
			continue
		}
		fed := false
		for _, up := range upstream[idx] {
			if river.GetIdx(up) != 0 {
				fed = true
				break
			}
		}
		if !fed {
			headwaters = append(headwaters, idx)
		}
	}

	for _, idx := range headwaters {
		extendUpstream(idx, upstream, river, accum, maxUp)
	}

	return river
}

// precipFactor maps normalised precipitation in [0,1] to a threshold
// multiplier in [0.5, 1.5]: wetter cells need less accumulated flow to
// count as a river.
func precipFactor(p float32) float64 {
	return 1.5 - float64(p)
}

// buildUpstream inverts the D8 direction field into, for every cell,
// the list of neighbour cells that drain into it.
func buildUpstream(dir *grid.Grid[uint8], w, h int) [][]int {
	upstream := make([][]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := dir.Index(x, y)
			d := Direction(dir.GetIdx(idx))
			if d == DirSink {
				continue
			}
			off := grid.Offset8[d]
			nx, ny := dir.WrapX(x+off[0]), y+off[1]
			if ny < 0 || ny >= h {
				continue
			}
			nIdx := dir.Index(nx, ny)
			upstream[nIdx] = append(upstream[nIdx], idx)
		}
	}
	return upstream
}

// extendUpstream walks the single highest-accumulation branch from a
// headwater for up to maxCells steps, marking cells as river even
// though they fell under the extraction threshold, ties broken by
// lowest flat index for determinism.
func extendUpstream(idx int, upstream [][]int, river *grid.Grid[uint8], accum *grid.Grid[float32], maxCells int) {
	cur := idx
	for i := 0; i < maxCells; i++ {
		branches := upstream[cur]
		if len(branches) == 0 {
			return
		}
		next := branches[0]
		for _, b := range branches[1:] {
			if accum.GetIdx(b) > accum.GetIdx(next) || (accum.GetIdx(b) == accum.GetIdx(next) && b < next) {
				next = b
			}
		}
		if river.GetIdx(next) != 0 {
			return
		}
		river.SetIdx(next, 1)
		cur = next
	}
}
