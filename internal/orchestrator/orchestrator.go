// Package orchestrator wires the eight leaf packages (rng, grid, plates,
// boundary, elevation, climate, hydrology, render) into the two-phase
// generate/rivers contract: a cheap base pass and an
// expensive hydrology pass that reuses the base pass's cached fields.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"worldgen-core/internal/boundary"
	"worldgen-core/internal/climate"
	"worldgen-core/internal/debug"
	"worldgen-core/internal/elevation"
	"worldgen-core/internal/grid"
	"worldgen-core/internal/hydrology"
	"worldgen-core/internal/logging"
	"worldgen-core/internal/metrics"
	"worldgen-core/internal/plates"
	"worldgen-core/internal/rng"
)

// Generate runs the base pipeline - RNG through Climate - and returns a
// MapResult holding every field the Hydrology pass needs, without
// running Hydrology itself. Validate is
// called first so an invalid Params never triggers an allocation.
func Generate(ctx context.Context, params Params) (*MapResult, error) {
	if err := params.Validate(); err != nil {
		return nil, recordAndReturn(err)
	}

	runID := uuid.New()
	ctx = logging.WithRun(ctx, runID)
	logger := logging.FromContext(ctx)
	logger.Info().Uint64("seed", params.Seed).Int("width", params.Width).Int("height", params.Height).Msg("generate: starting base pass")

	totalStart := time.Now()
	var timings []StageTiming
	stage := func(name string, start time.Time) {
		ms := elapsedMs(start)
		timings = append(timings, StageTiming{Name: name, Ms: ms})
		metrics.RecordStageDuration(name, time.Since(start))
		debug.Log(debug.Perf, "%s took %.2fms", name, ms)
	}

	if err := checkCancelled(ctx, ""); err != nil {
		return nil, recordAndReturn(err)
	}

	// 1. RNG - every sub-stream is forked by label from the master
	// stream so runs are reproducible regardless of call order.
	start := time.Now()
	master := rng.New(params.Seed)
	seedStream := master.Fork("plates.seed")
	growNoiseSeed := master.Fork("plates.grow").NextU64()
	propStream := master.Fork("plates.properties")
	interiorSeed := master.Fork("elevation.interior").NextU64()
	detailSeed := master.Fork("elevation.detail").NextU64()
	climateNoiseSeed := master.Fork("climate.temperature").NextU64()
	precipSeed := int64(master.Fork("climate.precipitation").NextU64())
	stage("RNG", start)

	// 2. Grid & Noise - FBM samplers, each wrap-periodic on the grid
	// width so the x=0/W-1 seam stays continuous.
	start = time.Now()
	interiorNoise := grid.NewFBM(interiorSeed, params.Width)
	detailNoise := grid.NewFBM(detailSeed, params.Width)
	growNoise := grid.NewFBM(growNoiseSeed, params.Width)
	climateNoise := grid.NewFBM(climateNoiseSeed, params.Width)
	stage("Grid & Noise", start)

	if err := checkCancelled(ctx, "PlateSeeder"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 3. PlateSeeder
	start = time.Now()
	seedCfg := plates.SeedConfig{
		Width: params.Width, Height: params.Height,
		NumMacroplates: params.NumMacroplates, NumMicroplates: params.NumMicroplates,
		DartBudgetMultiplier: params.DartBudgetMultiplier,
	}
	macroSites := plates.SeedMacroplates(seedCfg, seedStream)
	microSites := plates.SeedMicroplates(seedCfg, macroSites, seedStream)
	stage("PlateSeeder", start)

	if err := checkCancelled(ctx, "PlateGrower"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 4. PlateGrower
	start = time.Now()
	growCfg := plates.GrowConfig{Width: params.Width, Height: params.Height, BoundaryNoise: params.BoundaryNoise}
	plateLabels := plates.Grow(growCfg, microSites, growNoise)
	stage("PlateGrower", start)

	if err := checkCancelled(ctx, "PlateProperties"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 5. PlateProperties
	start = time.Now()
	macroplates := make([]plates.Macroplate, len(macroSites))
	microMacroID := make([]int, len(microSites))
	for i, s := range macroSites {
		macroplates[i] = plates.Macroplate{ID: i, Seed: [2]int{int(s[0]), int(s[1])}}
	}
	for i, s := range microSites {
		microMacroID[i] = plates.NearestMacroplate(params.Width, s[0], s[1], macroSites)
	}
	propCfg := plates.PropertiesConfig{ContinentalFraction: params.ContinentalFraction, VelocityMagnitude: params.VelocityMagnitude}
	microplates := plates.AssignProperties(propCfg, macroplates, microSites, microMacroID, propStream)
	plateSet := plates.Set{Macroplates: macroplates, Microplates: microplates}
	stage("PlateProperties", start)

	if err := invariantUnlabelledCells(plateLabels, len(microplates)); err != nil {
		return nil, recordAndReturn(newError(KindInternal, "PlateProperties", err))
	}

	if err := checkCancelled(ctx, "BoundaryExtractor"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 6. BoundaryExtractor
	start = time.Now()
	extraction := boundary.Extract(boundary.Config{ConvergenceThreshold: params.ConvergenceThreshold}, plateLabels, microplates)
	stage("BoundaryExtractor", start)

	if err := checkCancelled(ctx, "DistanceField"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 7. DistanceField
	start = time.Now()
	distField, err := boundary.JFA(ctx, extraction)
	if err != nil {
		return nil, recordAndReturn(wrapContextErr(err, "DistanceField"))
	}
	stage("DistanceField", start)

	if err := checkCancelled(ctx, "Elevation"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 8. Elevation
	start = time.Now()
	elevCfg := elevation.Config{
		ContinentalFraction: params.ContinentalFraction,
		MountainScale:       params.MountainScale, MountainWidth: params.MountainWidth, TrenchScale: params.TrenchScale,
		RidgeHeight: params.RidgeHeight, RiftDepth: params.RiftDepth,
		CoastAmp: params.CoastAmp, ShelfWidth: params.ShelfWidth,
		InteriorAmp: params.InteriorAmp, DetailAmp: params.DetailAmp,
		BlurSigma: params.BlurSigma,
	}
	elev := elevation.Synthesize(elevCfg, plateLabels, microplates, distField, extraction.Segments, interiorNoise, detailNoise)
	stage("Elevation", start)

	if err := checkCancelled(ctx, "Climate"); err != nil {
		return nil, recordAndReturn(err)
	}

	// 9. Climate
	start = time.Now()
	temperature, err := climate.Temperature(ctx, climate.TemperatureConfig{NoiseAmplitude: params.TemperatureNoise}, elev, climateNoise)
	if err != nil {
		return nil, recordAndReturn(wrapContextErr(err, "Climate"))
	}
	precip, err := climate.Precipitation(ctx, climate.PrecipitationConfig{RainfallScale: params.RainfallScale, Seed: precipSeed}, elev)
	if err != nil {
		return nil, recordAndReturn(wrapContextErr(err, "Climate"))
	}
	stage("Climate", start)

	timings = append(timings, StageTiming{Name: "TOTAL", Ms: elapsedMs(totalStart)})
	metrics.SetGridSize("base", params.Width*params.Height)
	metrics.RecordGenerationResult("success")

	logger.Info().Float64("total_ms", elapsedMs(totalStart)).Msg("generate: base pass complete")

	return &MapResult{
		RunID:       runID,
		Params:      params,
		PlateLabels: plateLabels,
		Plates:      plateSet,
		Boundary:    distField,
		Elevation:   elev,
		Temperature: temperature,
		Precip:      precip,
		Timings:     timings,
	}, nil
}

// GenerateRivers runs the Hydrology stage against a MapResult already
// produced by Generate, reusing its cached elevation and precipitation
// fields rather than recomputing them.
// It returns a new MapResult whose Elevation reflects the valley-carved
// surface, so every render layer sees the post-carve field automatically.
func GenerateRivers(ctx context.Context, params Params, base *MapResult) (*MapResult, error) {
	if base == nil {
		return nil, newError(KindInvalidParameters, "GenerateRivers", fmt.Errorf("base MapResult is nil"))
	}
	if base.Elevation == nil || base.Precip == nil {
		return nil, newError(KindInvalidParameters, "GenerateRivers", fmt.Errorf("base MapResult is missing Elevation or Precip"))
	}

	logger := logging.FromContext(ctx)

	if err := checkCancelled(ctx, "Hydrology"); err != nil {
		return nil, recordAndReturn(err)
	}

	start := time.Now()
	cfg := hydrology.Config{
		MeanderAmp:       params.MeanderAmp,
		RiverThreshold:   params.RiverThreshold,
		MaxUpstreamCells: params.MaxUpstreamCells,
		CarveRadius:      params.ValleyRadius,
		CarveDepth:       params.ValleyDepth,
		Seed:             rng.New(params.Seed).Fork("hydrology").NextU64(),
	}
	result, err := hydrology.Run(ctx, cfg, base.Elevation, base.Precip)
	if err != nil {
		return nil, recordAndReturn(wrapContextErr(err, "Hydrology"))
	}
	hydroMs := elapsedMs(start)
	metrics.RecordStageDuration("Hydrology", time.Since(start))
	debug.Log(debug.Perf, "Hydrology took %.2fms", hydroMs)
	metrics.SetGridSize("hydrology", result.Carved.Width*hydrology.UpscaleFactor*result.Carved.Height*hydrology.UpscaleFactor)

	timings := append(stripTotal(base.Timings), StageTiming{Name: "Hydrology", Ms: hydroMs})
	timings = append(timings, StageTiming{Name: "TOTAL", Ms: sumMs(timings)})
	metrics.RecordGenerationResult("success")

	logger.Info().Float64("hydrology_ms", hydroMs).Msg("generate rivers: complete")

	out := *base
	out.Hydro = result
	out.Elevation = result.Carved
	out.Timings = timings
	return &out, nil
}

func checkCancelled(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return newError(KindCancelled, stage, err)
	}
	return nil
}

// wrapContextErr classifies a stage error returned through a context:
// a cancellation/deadline surfaces as Cancelled, anything else as
// Internal.
func wrapContextErr(err error, stage string) error {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return newError(KindCancelled, stage, err)
	}
	return newError(KindInternal, stage, err)
}

// invariantUnlabelledCells checks the plate-partition-completeness
// invariant: every cell must carry a label in [0, numMicroplates).
func invariantUnlabelledCells(labels *grid.Grid[uint16], numMicroplates int) error {
	for _, v := range labels.Cells() {
		if int(v) >= numMicroplates {
			return fmt.Errorf("cell labelled %d, out of range [0, %d)", v, numMicroplates)
		}
	}
	return nil
}

func stripTotal(timings []StageTiming) []StageTiming {
	out := make([]StageTiming, 0, len(timings))
	for _, t := range timings {
		if t.Name != "TOTAL" {
			out = append(out, t)
		}
	}
	return out
}

func sumMs(timings []StageTiming) float64 {
	var sum float64
	for _, t := range timings {
		sum += t.Ms
	}
	return sum
}

// recordAndReturn increments the generation-outcome counter by the
// error's Kind before returning it, so callers never have to remember
// to record a failure at every return site.
func recordAndReturn(err error) error {
	if oe, ok := err.(*Error); ok {
		metrics.RecordGenerationResult(oe.Kind.String())
	} else {
		metrics.RecordGenerationResult(KindInternal.String())
	}
	return err
}
