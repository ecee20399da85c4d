package elevation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"worldgen-core/internal/grid"
)

// NormalizeSeaLevel picks the elevation threshold so that the fraction of
// cells above it equals continentalFraction, then subtracts it so 0
// becomes sea level. The threshold is the (1-f) quantile of
// the elevation histogram: f of the mass lies above it by construction.
func NormalizeSeaLevel(g *grid.Grid[float32], continentalFraction float64) {
	f := continentalFraction
	if math.IsNaN(f) || f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	cells := g.Cells()
	sample := make([]float64, len(cells))
	for i, v := range cells {
		sample[i] = float64(v)
	}
	sort.Float64s(sample)

	threshold := stat.Quantile(1-f, stat.LinInterp, sample, nil)
	if math.IsNaN(threshold) {
		threshold = 0
	}

	for i, v := range cells {
		cells[i] = v - float32(threshold)
	}
}
