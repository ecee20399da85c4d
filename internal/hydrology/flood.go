package hydrology

import (
	"container/heap"

	"worldgen-core/internal/grid"
)

// floodEpsilon is the minimum elevation increment enforced between a
// cell and its upstream neighbour during the priority flood, guaranteeing
// a strictly monotonic (non-flat) drainage gradient out of every filled
// depression.
const floodEpsilon = 1e-6

type floodItem struct {
	x, y  int
	elev  float32
	index int
}

type floodHeap []*floodItem

func (h floodHeap) Len() int { return len(h) }
func (h floodHeap) Less(i, j int) bool {
	if h[i].elev != h[j].elev {
		return h[i].elev < h[j].elev
	}
	if h[i].y != h[j].y {
		return h[i].y < h[j].y
	}
	return h[i].x < h[j].x
}
func (h floodHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *floodHeap) Push(x any) {
	item := x.(*floodItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *floodHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// PriorityFlood runs the Barnes et al. depression-filling flood:
// every ocean cell seeds a min-heap keyed by elevation; the
// lowest unvisited cell is popped and each of its land neighbours is
// filled to at least its own level plus floodEpsilon, then pushed. The
// result is a filled elevation field from which every land cell drains
// to the ocean with no local minima.
func PriorityFlood(elev *grid.Grid[float32]) *grid.Grid[float32] {
	w, h := elev.Width, elev.Height
	filled := grid.New[float32](w, h)
	visited := make([]bool, w*h)

	pq := make(floodHeap, 0, w*h/4)
	heap.Init(&pq)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := elev.Index(x, y)
			if elev.GetIdx(idx) <= 0 {
				filled.SetIdx(idx, elev.GetIdx(idx))
				visited[idx] = true
				heap.Push(&pq, &floodItem{x: x, y: y, elev: elev.GetIdx(idx)})
			}
		}
	}

	for pq.Len() > 0 {
		c := heap.Pop(&pq).(*floodItem)
		for _, nb := range elev.Neighbors8(c.x, c.y) {
			nx, ny := nb[0], nb[1]
			if ny < 0 || ny >= h {
				continue
			}
			nidx := elev.Index(nx, ny)
			if visited[nidx] {
				continue
			}
			visited[nidx] = true
			nElev := elev.GetIdx(nidx)
			fillLevel := c.elev + floodEpsilon
			if float64(nElev) > float64(fillLevel) {
				fillLevel = nElev
			}
			filled.SetIdx(nidx, fillLevel)
			heap.Push(&pq, &floodItem{x: nx, y: ny, elev: fillLevel})
		}
	}

	return filled
}
