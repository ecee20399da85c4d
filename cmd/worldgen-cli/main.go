// Command worldgen-cli runs the generation pipeline end to end and
// writes every rendered layer as a PNG file. This is the one place PNG
// encoding happens; the core itself never touches image/png.
package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"worldgen-core/internal/logging"
	"worldgen-core/internal/orchestrator"
	"worldgen-core/internal/render"
)

// config holds the env-var defaults every flag below overrides.
type config struct {
	params orchestrator.Params
	outDir string
}

func loadConfig() config {
	p := orchestrator.Default()

	if v := os.Getenv("WORLDGEN_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.Seed = n
		}
	}
	if v := os.Getenv("WORLDGEN_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Width = n
		}
	}
	if v := os.Getenv("WORLDGEN_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Height = n
		}
	}

	outDir := os.Getenv("WORLDGEN_OUT_DIR")
	if outDir == "" {
		outDir = "./out"
	}

	return config{params: p, outDir: outDir}
}

func main() {
	logging.InitLogger()

	cfg := loadConfig()
	p := &cfg.params

	pflag.Uint64Var(&p.Seed, "seed", p.Seed, "master RNG seed")
	pflag.IntVar(&p.Width, "width", p.Width, "grid width in cells (256-8192)")
	pflag.IntVar(&p.Height, "height", p.Height, "grid height in cells (128-4096)")
	pflag.Float64Var(&p.ContinentalFraction, "continental-fraction", p.ContinentalFraction, "target land fraction (0-1)")
	pflag.IntVar(&p.NumMacroplates, "num-macroplates", p.NumMacroplates, "macroplate count (2-32)")
	pflag.IntVar(&p.NumMicroplates, "num-microplates", p.NumMicroplates, "microplate count (50-4000)")
	pflag.Float64Var(&p.BoundaryNoise, "boundary-noise", p.BoundaryNoise, "plate-grower edge noise weight")
	pflag.Float64Var(&p.BlurSigma, "blur-sigma", p.BlurSigma, "elevation smoothing sigma")
	pflag.Float64Var(&p.MountainScale, "mountain-scale", p.MountainScale, "convergent overriding-side amplitude")
	pflag.Float64Var(&p.MountainWidth, "mountain-width", p.MountainWidth, "tectonic profile decay width, in cells")
	pflag.Float64Var(&p.TrenchScale, "trench-scale", p.TrenchScale, "convergent subducting-side amplitude")
	pflag.Float64Var(&p.CoastAmp, "coast-amp", p.CoastAmp, "continental-base amplitude")
	pflag.Float64Var(&p.ShelfWidth, "shelf-width", p.ShelfWidth, "coastal taper width, in cells")
	pflag.Float64Var(&p.InteriorAmp, "interior-amp", p.InteriorAmp, "low-frequency interior FBM amplitude")
	pflag.Float64Var(&p.DetailAmp, "detail-amp", p.DetailAmp, "high-frequency detail FBM amplitude")
	pflag.Float64Var(&p.RidgeHeight, "ridge-height", p.RidgeHeight, "mid-ocean ridge amplitude")
	pflag.Float64Var(&p.RiftDepth, "rift-depth", p.RiftDepth, "continental rift amplitude")
	pflag.Float64Var(&p.RainfallScale, "rainfall-scale", p.RainfallScale, "precipitation output multiplier")
	pflag.Float64Var(&p.RiverThreshold, "river-threshold", p.RiverThreshold, "flow accumulation threshold for river cells")
	outDir := pflag.String("out", cfg.outDir, "output directory for rendered PNGs")
	pflag.Parse()

	if err := run(*p, *outDir); err != nil {
		log.Fatal().Err(err).Msg("worldgen-cli: generation failed")
	}
}

func run(params orchestrator.Params, outDir string) error {
	ctx := context.Background()
	logger := log.Logger

	result, err := orchestrator.Generate(ctx, params)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	result, err = orchestrator.GenerateRivers(ctx, params, result)
	if err != nil {
		return fmt.Errorf("generate rivers: %w", err)
	}

	for _, t := range result.Timings {
		logger.Info().Str("stage", t.Name).Float64("ms", t.Ms).Msg("stage timing")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	layers := []string{
		render.LayerPlates, render.LayerBoundaries, render.LayerDistance,
		render.LayerHeightmap, render.LayerMap, render.LayerTemperature,
		render.LayerPrecipitation, render.LayerRivers,
	}
	for _, name := range layers {
		img, err := result.Render(name)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		path := filepath.Join(outDir, name+".png")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = png.Encode(f, img)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", path, closeErr)
		}
		logger.Info().Str("path", path).Msg("wrote layer")
	}
	return nil
}
