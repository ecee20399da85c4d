package hydrology

import (
	"context"

	"worldgen-core/internal/grid"
)

// Config bundles every tunable the hydrology stage exposes.
type Config struct {
	MeanderAmp       float64
	RiverThreshold   float64
	MaxUpstreamCells int
	CarveRadius      int
	CarveDepth       float64
	Seed             uint64
}

// Result holds every field the hydrology stage produces, at both
// hydrology (upscaled) and base resolution.
type Result struct {
	Upscaled *grid.Grid[float32] // W*H at UpscaleFactor resolution, pre-flood
	Filled   *grid.Grid[float32] // post priority-flood
	Flow     *FlowField
	Rivers   *grid.Grid[uint8] // river mask at upscaled resolution
	Carved   *grid.Grid[float32] // base-resolution elevation with valleys carved in
}

// Run executes the full hydrology pipeline: upscale,
// priority flood, D8 flow routing, river extraction, and valley
// carving back onto the base grid. precip must be at base resolution;
// it is bicubically upscaled internally the same way elevation is, so
// river density tracks local rainfall at the working resolution.
func Run(ctx context.Context, cfg Config, baseElev *grid.Grid[float32], precip *grid.Grid[float32]) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meander := grid.NewFBM(cfg.Seed, baseElev.Width*UpscaleFactor)
	upscaled := Upscale(baseElev, cfg.MeanderAmp, meander)
	upPrecip := Upscale(precip, 0, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filled := PriorityFlood(upscaled)
	dir := Direction8(filled)
	accum := Accumulate(filled, dir)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rivers := ExtractRivers(RiverConfig{
		Threshold:        cfg.RiverThreshold,
		MaxUpstreamCells: cfg.MaxUpstreamCells,
	}, accum, dir, upPrecip)

	carved := CarveValleys(CarveConfig{
		Radius: cfg.CarveRadius,
		Depth:  cfg.CarveDepth,
	}, baseElev, rivers, accum)

	return &Result{
		Upscaled: upscaled,
		Filled:   filled,
		Flow:     &FlowField{Dir: dir, Accum: accum},
		Rivers:   rivers,
		Carved:   carved,
	}, nil
}
