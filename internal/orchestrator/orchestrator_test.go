package orchestrator

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallParams returns a Params at the smallest resolution Validate
// accepts, so the full pipeline runs fast enough for a unit test while
// still exercising every stage.
func smallParams(seed uint64) Params {
	p := Default()
	p.Seed = seed
	p.Width = 256
	p.Height = 128
	p.NumMacroplates = 4
	p.NumMicroplates = 80
	return p
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"default ok", func(p *Params) {}, false},
		{"width too small", func(p *Params) { p.Width = 100 }, true},
		{"width too large", func(p *Params) { p.Width = 9000 }, true},
		{"height too small", func(p *Params) { p.Height = 10 }, true},
		{"continental fraction negative", func(p *Params) { p.ContinentalFraction = -0.1 }, true},
		{"continental fraction over one", func(p *Params) { p.ContinentalFraction = 1.1 }, true},
		{"too few macroplates", func(p *Params) { p.NumMacroplates = 1 }, true},
		{"too many macroplates", func(p *Params) { p.NumMacroplates = 33 }, true},
		{"too few microplates", func(p *Params) { p.NumMicroplates = 10 }, true},
		{"microplates below macroplates", func(p *Params) { p.NumMicroplates = p.NumMacroplates - 1 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := smallParams(1)
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr {
				require.Error(t, err)
				var oe *Error
				require.ErrorAs(t, err, &oe)
				assert.Equal(t, KindInvalidParameters, oe.Kind)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateRejectsInvalidParamsBeforeAllocating(t *testing.T) {
	p := smallParams(1)
	p.Width = 100
	_, err := Generate(context.Background(), p)
	require.Error(t, err)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindInvalidParameters, oe.Kind)
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, smallParams(1))
	require.Error(t, err)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindCancelled, oe.Kind)
}

// TestDeterminism is testable property #1: two independent runs of the
// same seed and params must be bit-identical.
func TestDeterminism(t *testing.T) {
	p := smallParams(42)
	a, err := Generate(context.Background(), p)
	require.NoError(t, err)
	b, err := Generate(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, a.Elevation.Cells(), b.Elevation.Cells())
	require.Equal(t, a.Temperature.Cells(), b.Temperature.Cells())
	require.Equal(t, a.Precip.Cells(), b.Precip.Cells())
	require.Equal(t, a.PlateLabels.Cells(), b.PlateLabels.Cells())

	ra, err := GenerateRivers(context.Background(), p, a)
	require.NoError(t, err)
	rb, err := GenerateRivers(context.Background(), p, b)
	require.NoError(t, err)
	require.Equal(t, ra.Hydro.Rivers.Cells(), rb.Hydro.Rivers.Cells())
	require.Equal(t, ra.Elevation.Cells(), rb.Elevation.Cells())
}

// TestPlatePartitionCompleteness is testable property #3: every cell
// carries exactly one microplate id in [0, num_microplates).
func TestPlatePartitionCompleteness(t *testing.T) {
	p := smallParams(7)
	result, err := Generate(context.Background(), p)
	require.NoError(t, err)

	seen := make([]bool, p.NumMicroplates)
	for _, id := range result.PlateLabels.Cells() {
		require.Less(t, int(id), p.NumMicroplates)
		seen[id] = true
	}
	for id, used := range seen {
		assert.True(t, used, "microplate %d has no cells", id)
	}
}

// TestSeaLevelCalibration is testable property #6.
func TestSeaLevelCalibration(t *testing.T) {
	p := smallParams(9)
	p.ContinentalFraction = 0.35
	result, err := Generate(context.Background(), p)
	require.NoError(t, err)

	total := p.Width * p.Height
	above := 0
	for _, e := range result.Elevation.Cells() {
		if e > 0 {
			above++
		}
	}
	got := float64(above) / float64(total)
	tolerance := 1.0/float64(total) + 0.02
	assert.InDelta(t, p.ContinentalFraction, got, tolerance)
}

// TestTwoPhaseContract exercises the Generate/GenerateRivers split:
// GenerateRivers must reuse base's cached fields rather than
// recomputing them, and its MapResult.Elevation must reflect the
// valley-carved surface.
func TestTwoPhaseContract(t *testing.T) {
	p := smallParams(3)
	base, err := Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, base.Hydro)

	withRivers, err := GenerateRivers(context.Background(), p, base)
	require.NoError(t, err)
	require.NotNil(t, withRivers.Hydro)
	assert.Same(t, withRivers.Hydro.Carved, withRivers.Elevation)

	// base resolution fields are untouched in the returned MapResult.
	assert.Equal(t, base.PlateLabels, withRivers.PlateLabels)
	assert.Equal(t, base.Temperature, withRivers.Temperature)

	names := make(map[string]bool)
	for _, st := range withRivers.Timings {
		names[st.Name] = true
	}
	assert.True(t, names["Hydrology"])
	assert.True(t, names["TOTAL"])
}

func TestGenerateRiversRequiresBase(t *testing.T) {
	_, err := GenerateRivers(context.Background(), smallParams(1), nil)
	require.Error(t, err)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindInvalidParameters, oe.Kind)
}

func TestRenderAllLayers(t *testing.T) {
	p := smallParams(5)
	base, err := Generate(context.Background(), p)
	require.NoError(t, err)
	result, err := GenerateRivers(context.Background(), p, base)
	require.NoError(t, err)

	for _, name := range []string{"plates", "boundaries", "distance", "heightmap", "map", "temperature", "precipitation", "rivers"} {
		img, err := result.Render(name)
		require.NoError(t, err, "layer %s", name)
		assert.Equal(t, p.Width, img.Bounds().Dx())
		assert.Equal(t, p.Height, img.Bounds().Dy())
	}

	_, err = result.Render("not-a-layer")
	assert.Error(t, err)
}

// TestTemperatureLatitudeMean checks that a high land fraction still
// leaves the equatorial row's mean temperature near the model's T_eq,
// adapted to the small test grid: the equatorial row's mean
// temperature should land close to the model's T_eq before lapse-rate
// cooling has much effect, i.e. within a generous band around 30C.
func TestTemperatureLatitudeMean(t *testing.T) {
	p := smallParams(11)
	p.ContinentalFraction = 0.6
	result, err := Generate(context.Background(), p)
	require.NoError(t, err)

	midY := p.Height / 2
	var sum float64
	for x := 0; x < p.Width; x++ {
		sum += float64(result.Temperature.Get(x, midY))
	}
	mean := sum / float64(p.Width)
	assert.True(t, math.Abs(mean-30) < 15, "equatorial mean temperature %.2f too far from 30C", mean)
}
