package elevation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-core/internal/boundary"
	"worldgen-core/internal/grid"
	"worldgen-core/internal/plates"
)

func twoPlateLabels(w, h, split int) *grid.Grid[uint16] {
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

func buildField(t *testing.T, labels *grid.Grid[uint16], micro []plates.Microplate) (*boundary.Field, []boundary.Segment) {
	t.Helper()
	ext := boundary.Extract(boundary.Config{ConvergenceThreshold: 0.1}, labels, micro)
	field, err := boundary.JFA(context.Background(), ext)
	require.NoError(t, err)
	return field, ext.Segments
}

func TestSeaLevelCalibration(t *testing.T) {
	const w, h = 64, 32
	labels := twoPlateLabels(w, h, 32)
	micro := []plates.Microplate{
		{ID: 0, Type: plates.Continental, Velocity: plates.Vec2{X: 1}},
		{ID: 1, Type: plates.Oceanic, Velocity: plates.Vec2{X: -1}},
	}
	field, segs := buildField(t, labels, micro)

	cfg := Config{
		ContinentalFraction: 0.3,
		MountainScale:       0.4, MountainWidth: 8, TrenchScale: 0.3,
		RidgeHeight: 0.1, RiftDepth: 0.1,
		CoastAmp: 0.2, ShelfWidth: 4,
		InteriorAmp: 0.1, DetailAmp: 0.05,
	}
	interior := grid.NewFBM(1, w)
	detail := grid.NewFBM(2, w)

	elev := Synthesize(cfg, labels, micro, field, segs, interior, detail)

	above := 0
	for _, v := range elev.Cells() {
		if v > 0 {
			above++
		}
	}
	frac := float64(above) / float64(w*h)
	assert.InDelta(t, 0.3, frac, 0.02)
}

func TestGaussianBlurPreservesMean(t *testing.T) {
	const w, h = 16, 16
	g := grid.New[float32](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float32((x+y)%3))
		}
	}
	var before float64
	for _, v := range g.Cells() {
		before += float64(v)
	}

	GaussianBlur(g, 1.5)

	var after float64
	for _, v := range g.Cells() {
		after += float64(v)
	}
	assert.InDelta(t, before, after, before*0.05+0.5)
}

func TestTectonicProfileSignsMatchOverridingSide(t *testing.T) {
	const w, h = 32, 16
	labels := twoPlateLabels(w, h, 16)
	micro := []plates.Microplate{
		{ID: 0, Type: plates.Continental, Velocity: plates.Vec2{X: 1}},
		{ID: 1, Type: plates.Oceanic, Velocity: plates.Vec2{X: -1}},
	}
	field, segs := buildField(t, labels, micro)

	cfg := Config{
		ContinentalFraction: 0.5,
		MountainScale:       1.0, MountainWidth: 6, TrenchScale: 1.0,
		CoastAmp: 0.1, ShelfWidth: 4,
	}
	flatNoise := grid.NewFBM(0, w)

	_, class, _, sign, segID := field.At(15, 0)
	require.Equal(t, boundary.Convergent, class)
	value := tectonicProfile(cfg, class, sign, float64(0), 6, segs, micro, segID, flatNoise, 15, 0)
	if sign > 0 {
		assert.Greater(t, value, 0.0)
	} else {
		assert.Less(t, value, 0.0)
	}
}
