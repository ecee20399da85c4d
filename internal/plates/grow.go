package plates

import (
	"container/heap"
	"math"

	"worldgen-core/internal/grid"
)

// GrowConfig bundles the weighted Dijkstra growth tunables.
type GrowConfig struct {
	Width, Height int
	BoundaryNoise float64 // k in w(a->b) = 1 + k*fbm(mid(a,b))
}

// frontierItem is one entry in the Dijkstra frontier heap: the accumulated
// cost to reach (x, y) via the labelled source, plus the source id used to
// break cost ties deterministically (lower id wins).
type frontierItem struct {
	cost  float64
	x, y  int
	label uint16
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].label < f[j].label
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Grow labels every cell with the id of the microplate seed whose
// noise-weighted path cost is cheapest, via multi-source Dijkstra.
// Ties at equal accumulated cost are broken by the lower seed id.
func Grow(cfg GrowConfig, microSites [][2]float64, noise *grid.FBM) *grid.Grid[uint16] {
	labels := grid.New[uint16](cfg.Width, cfg.Height)
	dist := grid.New[float64](cfg.Width, cfg.Height)
	visited := grid.New[bool](cfg.Width, cfg.Height)
	for i := range dist.Cells() {
		dist.SetIdx(i, math.Inf(1))
	}

	fr := make(frontier, 0, len(microSites)*4)
	heap.Init(&fr)

	for i, s := range microSites {
		x := wrapCoord(int(math.Round(s[0])), cfg.Width)
		y := clampCoord(int(math.Round(s[1])), cfg.Height)
		label := uint16(i)
		idx := y*cfg.Width + x
		if dist.GetIdx(idx) > 0 {
			dist.SetIdx(idx, 0)
			labels.SetIdx(idx, label)
			heap.Push(&fr, frontierItem{cost: 0, x: x, y: y, label: label})
		}
	}

	for fr.Len() > 0 {
		cur := heap.Pop(&fr).(frontierItem)
		idx := cur.y*cfg.Width + cur.x
		if visited.GetIdx(idx) {
			continue
		}
		if cur.cost > dist.GetIdx(idx) {
			continue
		}
		visited.SetIdx(idx, true)
		labels.SetIdx(idx, cur.label)

		for _, off := range grid.Offset4 {
			nx := wrapCoord(cur.x+off[0], cfg.Width)
			ny := cur.y + off[1]
			if ny < 0 || ny >= cfg.Height {
				continue
			}
			nidx := ny*cfg.Width + nx
			if visited.GetIdx(nidx) {
				continue
			}
			edge := edgeCost(cfg, noise, cur.x, cur.y, nx, ny)
			newCost := cur.cost + edge
			if newCost < dist.GetIdx(nidx) || (newCost == dist.GetIdx(nidx) && cur.label < labels.GetIdx(nidx)) {
				dist.SetIdx(nidx, newCost)
				labels.SetIdx(nidx, cur.label)
				heap.Push(&fr, frontierItem{cost: newCost, x: nx, y: ny, label: cur.label})
			}
		}
	}
	return labels
}

// edgeCost is w(a->b) = 1 + k*fbm(mid(a,b)) sampled at the edge midpoint,
// so jagged boundaries form where the noise field is high.
func edgeCost(cfg GrowConfig, noise *grid.FBM, ax, ay, bx, by int) float64 {
	midX := (float64(ax) + float64(bx)) / 2
	midY := (float64(ay) + float64(by)) / 2
	n := noise.Sample(midX, midY, 4, 2.0, 0.5)
	cost := 1 + cfg.BoundaryNoise*n
	if cost < 0.05 {
		cost = 0.05 // a wildly negative noise draw must never create a negative-cost edge
	}
	return cost
}

func wrapCoord(v, width int) int {
	v %= width
	if v < 0 {
		v += width
	}
	return v
}

func clampCoord(v, height int) int {
	if v < 0 {
		return 0
	}
	if v >= height {
		return height - 1
	}
	return v
}
