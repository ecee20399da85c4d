package hydrology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-core/internal/grid"
)

// coneElevation builds a base grid shaped like a single cone rising from
// ocean at the edges to a peak in the middle, guaranteed to have no
// interior depressions, plus one deliberate pit to exercise the flood.
func coneElevation(w, h int) *grid.Grid[float32] {
	g := grid.New[float32](w, h)
	cx, cy := float64(w)/2, float64(h)/2
	maxR := cx
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			r := (dx*dx + dy*dy)
			norm := r / (maxR * maxR)
			e := float32(0.8*(1-norm) - 0.2)
			g.Set(x, y, e)
		}
	}
	// Carve a pit near the centre: a local minimum surrounded by higher land.
	g.Set(int(cx), int(cy), g.Get(int(cx), int(cy))-0.5)
	return g
}

func TestPriorityFloodRemovesLocalMinima(t *testing.T) {
	const w, h = 24, 24
	elev := coneElevation(w, h)
	filled := PriorityFlood(elev)

	cx, cy := w/2, h/2
	pit := filled.Get(cx, cy)
	var minNeighbor float32 = 1 << 20
	for _, nb := range filled.Neighbors8(cx, cy) {
		if nb[1] < 0 || nb[1] >= h {
			continue
		}
		v := filled.Get(nb[0], nb[1])
		if v < minNeighbor {
			minNeighbor = v
		}
	}
	assert.Greater(t, pit, minNeighbor, "priority flood must eliminate the local minimum")
}

func TestFlowFormsAForestRootedAtSinks(t *testing.T) {
	const w, h = 20, 20
	elev := coneElevation(w, h)
	filled := PriorityFlood(elev)
	dir := Direction8(filled)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			visited := map[int]bool{}
			cx, cy := x, y
			steps := 0
			for {
				idx := filled.Index(cx, cy)
				if visited[idx] {
					t.Fatalf("cycle detected in flow graph starting at (%d,%d)", x, y)
				}
				visited[idx] = true
				d := Direction(dir.Get(cx, cy))
				if d == DirSink {
					break
				}
				off := grid.Offset8[d]
				cx, cy = filled.WrapX(cx+off[0]), cy+off[1]
				steps++
				if steps > w*h {
					t.Fatalf("flow walk from (%d,%d) exceeded grid size without reaching a sink", x, y)
				}
			}
		}
	}
}

func TestAccumulateMonotonicDownstream(t *testing.T) {
	const w, h = 16, 16
	elev := coneElevation(w, h)
	filled := PriorityFlood(elev)
	dir := Direction8(filled)
	accum := Accumulate(filled, dir)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := Direction(dir.Get(x, y))
			if d == DirSink {
				continue
			}
			off := grid.Offset8[d]
			nx, ny := filled.WrapX(x+off[0]), y+off[1]
			if ny < 0 || ny >= h {
				continue
			}
			assert.GreaterOrEqual(t, accum.Get(nx, ny), accum.Get(x, y),
				"accumulation must not decrease downstream at (%d,%d)->(%d,%d)", x, y, nx, ny)
		}
	}
}

func TestRiversAreRootedAtOceanOrSink(t *testing.T) {
	const w, h = 24, 24
	elev := coneElevation(w, h)
	precip := grid.New[float32](w, h)
	for i := range precip.Cells() {
		precip.SetIdx(i, 0.5)
	}

	filled := PriorityFlood(elev)
	dir := Direction8(filled)
	accum := Accumulate(filled, dir)
	rivers := ExtractRivers(RiverConfig{Threshold: 2, MaxUpstreamCells: 8}, accum, dir, precip)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rivers.Get(x, y) == 0 {
				continue
			}
			cx, cy := x, y
			steps := 0
			for {
				d := Direction(dir.Get(cx, cy))
				if d == DirSink {
					break
				}
				off := grid.Offset8[d]
				cx, cy = filled.WrapX(cx+off[0]), cy+off[1]
				steps++
				require.LessOrEqual(t, steps, w*h, "river cell (%d,%d) never reaches a sink", x, y)
			}
			assert.LessOrEqual(t, filled.Get(cx, cy), float32(0), "river must terminate at ocean")
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	const w, h = 16, 16
	elev := coneElevation(w, h)
	precip := grid.New[float32](w, h)
	for i := range precip.Cells() {
		precip.SetIdx(i, 0.4)
	}
	cfg := Config{
		MeanderAmp: 0.01, RiverThreshold: 3, MaxUpstreamCells: 4,
		CarveRadius: 2, CarveDepth: 0.05, Seed: 11,
	}

	a, err := Run(context.Background(), cfg, elev, precip)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, elev, precip)
	require.NoError(t, err)

	assert.Equal(t, a.Carved.Cells(), b.Carved.Cells())
	assert.Equal(t, a.Rivers.Cells(), b.Rivers.Cells())
}
