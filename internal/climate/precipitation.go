package climate

import (
	"context"
	"math"

	"worldgen-core/internal/grid"
	"worldgen-core/internal/parallel"
)

// PrecipitationConfig bundles the row-wise moisture advection tunables.
type PrecipitationConfig struct {
	RainfallScale float64

	// Evapotranspiration rate e, vegetation factor, orographic-lift
	// coefficient alpha and the moisture cap m_max all default to
	// documented constants (below) when left at zero so callers only have
	// to set RainfallScale for everyday tuning.
	EvapRate      float64
	VegFactor     float64
	LiftAlpha     float64
	MoistureCap   float64
	MoistureNoise float64
	Seed          int64
}

const (
	defaultEvapRate      = 0.06
	defaultVegFactor     = 0.5
	defaultLiftAlpha     = 0.6
	defaultMoistureCap   = 1.0
	defaultMoistureNoise = 0.04
)

// Precipitation runs the row-wise moisture advection model: wind
// direction per latitude band (trade easterlies 0-30°, westerlies
// 30-60°, polar easterlies 60-90°) decides which way a row is walked;
// within a row, moisture accumulates via evapotranspiration and is
// drained by orographic lift whenever elevation rises in the direction
// of travel. Rows are independent and dispatched in parallel; the walk
// within a row is strictly serial, carrying one moisture scalar.
func Precipitation(ctx context.Context, cfg PrecipitationConfig, elev *grid.Grid[float32]) (*grid.Grid[float32], error) {
	w, h := elev.Width, elev.Height
	out := grid.New[float32](w, h)

	evap := nonZero(cfg.EvapRate, defaultEvapRate)
	veg := nonZero(cfg.VegFactor, defaultVegFactor)
	alpha := nonZero(cfg.LiftAlpha, defaultLiftAlpha)
	moistureCap := nonZero(cfg.MoistureCap, defaultMoistureCap)
	moistureNoiseAmp := nonZero(cfg.MoistureNoise, defaultMoistureNoise)
	noise := newMoistureNoise(cfg.Seed)

	err := parallel.ForRows(ctx, h, func(y int) error {
		phi := latitudeAngle(y, h)
		absLatDeg := math.Abs(phi) * 180 / math.Pi
		eastward := windIsEastward(absLatDeg)

		order := rowOrder(w, eastward)
		m := 0.0
		prevElev := float64(elev.Get(order[len(order)-1], y))

		// Two laps around the cylinder: the first spins the moisture
		// scalar up from its arbitrary zero start, only the second is
		// recorded, so the row has no seam at the walk's starting column.
		for lap := 0; lap < 2; lap++ {
			record := lap == 1
			for _, x := range order {
				e := float64(elev.Get(x, y))
				sea := e <= 0

				if sea {
					m += evap * 1.0
				} else {
					m += evap * veg * (1 - m)
				}
				if moistureNoiseAmp != 0 {
					m += moistureNoiseAmp * noise.Sample(float64(x)*0.03, float64(y)*0.03)
				}

				rain := 0.0
				deltaElev := e - prevElev
				if deltaElev > 0 {
					rain = alpha * m * deltaElev
					m -= rain
				}
				if m < 0 {
					m = 0
				}
				if m > moistureCap {
					m = moistureCap
				}

				if record {
					profile := precipProfile(absLatDeg)
					out.Set(x, y, float32(rain*profile*cfg.RainfallScale))
				}
				prevElev = e
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	normalize01(out)
	return out, nil
}

// windIsEastward reports whether the prevailing wind in this latitude
// band advects moisture west-to-east (westerlies, 30-60°) as opposed to
// east-to-west (trade/polar easterlies, 0-30° and 60-90°).
func windIsEastward(absLatDeg float64) bool {
	return absLatDeg >= 30 && absLatDeg < 60
}

// rowOrder returns the x coordinates of a full row walk in the direction
// the local wind carries moisture, wrapping once around the cylinder.
func rowOrder(w int, eastward bool) []int {
	order := make([]int, w)
	if eastward {
		for i := 0; i < w; i++ {
			order[i] = i
		}
	} else {
		for i := 0; i < w; i++ {
			order[i] = w - 1 - i
		}
	}
	return order
}

// precipProfile is the Hadley-band amplitude modulation: wet
// at the equator (ITCZ), dry at the subtropics (~30°), wet again at
// mid-latitudes (~60°), dry at the poles. Band boundaries follow the
// classic Hadley/Ferrel/Polar cell split (0-30/30-60/60-90).
func precipProfile(absLatDeg float64) float64 {
	switch {
	case absLatDeg < 30:
		t := absLatDeg / 30
		return lerp(1.3, 0.4, t)
	case absLatDeg < 60:
		t := (absLatDeg - 30) / 30
		return lerp(0.4, 1.1, t)
	default:
		t := math.Min((absLatDeg-60)/30, 1)
		return lerp(1.1, 0.3, t)
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func nonZero(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// normalize01 rescales out in place to [0, 1] using the field's own
// min/max, defensively handling an all-zero (no rain at all) field by
// leaving it untouched rather than dividing by zero.
func normalize01(out *grid.Grid[float32]) {
	cells := out.Cells()
	min, max := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range cells {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span <= 0 {
		return
	}
	for i, v := range cells {
		cells[i] = (v - min) / span
	}
}
