package boundary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-core/internal/grid"
	"worldgen-core/internal/plates"
)

func twoPlateGrid(w, h, split int) *grid.Grid[uint16] {
	g := grid.New[uint16](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				g.Set(x, y, 0)
			} else {
				g.Set(x, y, 1)
			}
		}
	}
	return g
}

func twoMicroplates(vA, vB plates.Vec2, typeA, typeB plates.Type) []plates.Microplate {
	return []plates.Microplate{
		{ID: 0, Type: typeA, Velocity: vA},
		{ID: 1, Type: typeB, Velocity: vB},
	}
}

func TestExtractBoundaryClosure(t *testing.T) {
	const w, h = 16, 8
	labels := twoPlateGrid(w, h, 8)
	micro := twoMicroplates(plates.Vec2{X: 1, Y: 0}, plates.Vec2{X: -1, Y: 0}, plates.Continental, plates.Oceanic)

	ext := Extract(Config{ConvergenceThreshold: 0.1}, labels, micro)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			isBoundary := ext.Class[idx] != None
			expected := hasDifferingNeighbor(labels, x, y)
			assert.Equal(t, expected, isBoundary, "cell (%d,%d)", x, y)
		}
	}
}

func hasDifferingNeighbor(g *grid.Grid[uint16], x, y int) bool {
	p := g.Get(x, y)
	for _, off := range grid.Offset4 {
		nx := g.WrapX(x + off[0])
		ny := y + off[1]
		if !g.InBoundsY(ny) {
			continue
		}
		if g.Get(nx, ny) != p {
			return true
		}
	}
	return false
}

func TestExtractConvergentDivergent(t *testing.T) {
	const w, h = 16, 8
	labels := twoPlateGrid(w, h, 8)

	// Plates moving toward each other across the x=7/8 boundary: convergent.
	conv := Extract(Config{ConvergenceThreshold: 0.1}, labels,
		twoMicroplates(plates.Vec2{X: 1, Y: 0}, plates.Vec2{X: -1, Y: 0}, plates.Continental, plates.Oceanic))
	idx := 0*w + 7
	assert.Equal(t, Convergent, conv.Class[idx])

	// Plates moving apart: divergent.
	div := Extract(Config{ConvergenceThreshold: 0.1}, labels,
		twoMicroplates(plates.Vec2{X: -1, Y: 0}, plates.Vec2{X: 1, Y: 0}, plates.Oceanic, plates.Oceanic))
	assert.Equal(t, Divergent, div.Class[idx])
}

func TestJFADistanceNonNegativeAndZeroOnBoundary(t *testing.T) {
	const w, h = 32, 16
	labels := twoPlateGrid(w, h, 16)
	micro := twoMicroplates(plates.Vec2{X: 1, Y: 0}, plates.Vec2{X: -1, Y: 0}, plates.Continental, plates.Oceanic)
	ext := Extract(Config{ConvergenceThreshold: 0.1}, labels, micro)

	field, err := JFA(context.Background(), ext)
	require.NoError(t, err)

	for i, d := range field.Distance {
		assert.GreaterOrEqual(t, d, float32(0))
		isBoundary := ext.Class[i] != None
		if isBoundary {
			assert.Equal(t, float32(0), d, "boundary cell %d must have distance 0", i)
		} else {
			assert.Greater(t, d, float32(0), "non-boundary cell %d must have positive distance", i)
		}
	}
}

func TestJFAIsDeterministic(t *testing.T) {
	const w, h = 48, 24
	labels := twoPlateGrid(w, h, 20)
	micro := twoMicroplates(plates.Vec2{X: 1, Y: 0.3}, plates.Vec2{X: -0.5, Y: -0.2}, plates.Continental, plates.Oceanic)
	ext := Extract(Config{ConvergenceThreshold: 0.1}, labels, micro)

	a, err := JFA(context.Background(), ext)
	require.NoError(t, err)
	b, err := JFA(context.Background(), ext)
	require.NoError(t, err)

	assert.Equal(t, a.Distance, b.Distance)
	assert.Equal(t, a.SegmentID, b.SegmentID)
}
