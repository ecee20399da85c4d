// Package climate computes the temperature and precipitation fields:
// latitude+lapse+noise temperature, and a banded Hadley
// precipitation model driven by row-wise moisture advection with
// orographic lift and evapotranspiration.
package climate

import (
	"context"
	"math"

	"worldgen-core/internal/grid"
	"worldgen-core/internal/parallel"
)

const (
	tEquator  = 30.0  // °C at the equator
	tPole     = -30.0 // °C at the poles
	lapseRate = 60.0  // °C subtracted per unit of normalised elevation above sea level
)

// TemperatureConfig bundles the temperature field tunables.
type TemperatureConfig struct {
	NoiseAmplitude float64 // sigma_T
}

// Temperature computes T(x,y) = Teq - (Teq-Tpole)*|sin(phi)| -
// lapse*max(elev,0) + sigma_T*fbm(x,y), clamped to [-40, 40] °C for
// display. Rows are independent and dispatched in
// parallel.
func Temperature(ctx context.Context, cfg TemperatureConfig, elev *grid.Grid[float32], noise *grid.FBM) (*grid.Grid[float32], error) {
	w, h := elev.Width, elev.Height
	out := grid.New[float32](w, h)

	err := parallel.ForRows(ctx, h, func(y int) error {
		phi := latitudeAngle(y, h)
		lat := math.Abs(math.Sin(phi))
		for x := 0; x < w; x++ {
			e := float64(elev.Get(x, y))
			if e < 0 {
				e = 0
			}
			n := noise.SampleGrid(float64(x), float64(y), 0.02, 3, 2.0, 0.5)
			t := tEquator - (tEquator-tPole)*lat - lapseRate*e + cfg.NoiseAmplitude*n
			out.Set(x, y, float32(clamp(t, -40, 40)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// latitudeAngle maps row y in [0, h) to a latitude angle phi in
// [-pi/2, pi/2], with y=0 and y=h-1 at the poles and y=(h-1)/2 at the
// equator.
func latitudeAngle(y, h int) float64 {
	if h <= 1 {
		return 0
	}
	norm := float64(y)/float64(h-1)*2 - 1 // -1 at top, +1 at bottom
	return norm * math.Pi / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
