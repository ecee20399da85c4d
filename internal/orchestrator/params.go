package orchestrator

import "fmt"

// Params is the full configuration record for one generate invocation.
// All tunables are float64 except the integer-typed fields (seed,
// dimensions, plate counts, upstream cells, valley radius, dart budget);
// Default returns the set tuned so seed 42 at 2048x1024
// produces a recognisable map.
type Params struct {
	Seed   uint64
	Width  int
	Height int

	ContinentalFraction float64
	NumMacroplates      int
	NumMicroplates      int

	BoundaryNoise float64
	BlurSigma     float64

	// ConvergenceThreshold is tau_c: the relative-velocity
	// projection magnitude above which a boundary is convergent/divergent
	// rather than transform.
	ConvergenceThreshold float64

	MountainScale float64
	MountainWidth float64
	TrenchScale   float64

	CoastAmp    float64
	ShelfWidth  float64
	InteriorAmp float64
	DetailAmp   float64

	RidgeHeight float64
	RiftDepth   float64

	// TemperatureNoise is sigma_T in T(x,y)'s noise term.
	TemperatureNoise float64

	RainfallScale  float64
	RiverThreshold float64

	// MeanderAmp perturbs the upscaled elevation field before flow
	// routing so straight slopes develop sinuosity.
	MeanderAmp float64
	// MaxUpstreamCells bounds the per-basin upstream extension.
	MaxUpstreamCells int
	// ValleyRadius/ValleyDepth size the Gaussian valley-carving kernel;
	// both are aesthetic and exposed rather than pinned.
	ValleyRadius int
	ValleyDepth  float64

	// VelocityMagnitude scales the per-macroplate velocity draw.
	VelocityMagnitude float64
	// DartBudgetMultiplier caps the Poisson-disk darts thrown at this
	// multiple of the requested site count.
	DartBudgetMultiplier int
}

// Default returns the parameter set tuned so seed 42 at 2048x1024
// produces a recognisable map.
func Default() Params {
	return Params{
		Seed:   42,
		Width:  2048,
		Height: 1024,

		ContinentalFraction: 0.3,
		NumMacroplates:      8,
		NumMicroplates:      600,

		BoundaryNoise:        0.6,
		BlurSigma:            1.0,
		ConvergenceThreshold: 0.1,

		MountainScale: 0.9,
		MountainWidth: 40,
		TrenchScale:   0.6,

		CoastAmp:    0.15,
		ShelfWidth:  20,
		InteriorAmp: 0.25,
		DetailAmp:   0.08,

		RidgeHeight: 0.2,
		RiftDepth:   0.3,

		TemperatureNoise: 2.0,

		RainfallScale:  1.0,
		RiverThreshold: 40,

		MeanderAmp:       0.03,
		MaxUpstreamCells: 12,
		ValleyRadius:     2,
		ValleyDepth:      0.05,

		VelocityMagnitude:    1.0,
		DartBudgetMultiplier: 0, // per-stage defaults apply (seed.go)
	}
}

// Validate checks every documented parameter bound, failing fast before
// any grid is allocated.
func (p Params) Validate() error {
	if p.Width < 256 || p.Width > 8192 {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("width %d out of range [256, 8192]", p.Width))
	}
	if p.Height < 128 || p.Height > 4096 {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("height %d out of range [128, 4096]", p.Height))
	}
	if p.ContinentalFraction < 0 || p.ContinentalFraction > 1 {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("continental_fraction %g out of range [0, 1]", p.ContinentalFraction))
	}
	if p.NumMacroplates < 2 || p.NumMacroplates > 32 {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("num_macroplates %d out of range [2, 32]", p.NumMacroplates))
	}
	if p.NumMicroplates < 50 || p.NumMicroplates > 4000 {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("num_microplates %d out of range [50, 4000]", p.NumMicroplates))
	}
	if p.NumMicroplates < p.NumMacroplates {
		return newError(KindInvalidParameters, "Validate", fmt.Errorf("num_microplates %d must be >= num_macroplates %d", p.NumMicroplates, p.NumMacroplates))
	}
	return nil
}
