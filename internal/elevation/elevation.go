// Package elevation synthesizes the signed elevation field from boundary
// profiles, continental/oceanic plate membership, and multi-octave noise,
// then calibrates sea level to a target continental fraction.
package elevation

import (
	"math"

	"worldgen-core/internal/boundary"
	"worldgen-core/internal/grid"
	"worldgen-core/internal/plates"
)

// Config bundles the elevation synthesis tunables.
type Config struct {
	ContinentalFraction float64

	MountainScale float64
	MountainWidth float64
	TrenchScale   float64

	RidgeHeight float64
	RiftDepth   float64

	CoastAmp   float64
	ShelfWidth float64

	InteriorAmp float64
	DetailAmp   float64

	BlurSigma float64
}

// Synthesize builds the additive elevation field (tectonic profile +
// continental base/coast taper + interior/detail FBM), optionally blurs
// it, then normalises sea level so the fraction of cells above 0 equals
// cfg.ContinentalFraction.
func Synthesize(cfg Config, plateLabels *grid.Grid[uint16], microplates []plates.Microplate, field *boundary.Field, segments []boundary.Segment, interiorNoise, detailNoise *grid.FBM) *grid.Grid[float32] {
	w, h := plateLabels.Width, plateLabels.Height
	elev := grid.New[float32](w, h)

	mountainWidth := nonZero(cfg.MountainWidth, 40)
	shelfWidth := nonZero(cfg.ShelfWidth, 20)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			own := plateLabels.Get(x, y)
			ownType := microplates[own].Type

			d, class, _, sign, segID := field.At(x, y)
			dist := float64(d)

			tectonic := tectonicProfile(cfg, class, sign, dist, mountainWidth, segments, microplates, segID, detailNoise, x, y)
			base := continentalBase(cfg, ownType, dist, shelfWidth, segID, segments, microplates)

			fx, fy := float64(x), float64(y)
			interior := cfg.InteriorAmp * interiorNoise.SampleGrid(fx, fy, 0.01, 4, 2.0, 0.5)
			detail := cfg.DetailAmp * detailNoise.SampleGrid(fx, fy, 0.08, 3, 2.0, 0.5)

			elev.SetIdx(idx, float32(tectonic+base+interior+detail))
		}
	}

	if cfg.BlurSigma > 0 {
		GaussianBlur(elev, cfg.BlurSigma)
	}

	NormalizeSeaLevel(elev, cfg.ContinentalFraction)
	return elev
}

func tectonicProfile(cfg Config, class boundary.Kind, sign int8, dist, mountainWidth float64, segments []boundary.Segment, microplates []plates.Microplate, segID int32, detailNoise *grid.FBM, x, y int) float64 {
	decay := math.Exp(-dist / mountainWidth)
	switch class {
	case boundary.Convergent:
		amp := cfg.MountainScale
		if sign < 0 {
			amp = cfg.TrenchScale
		}
		return float64(sign) * amp * decay
	case boundary.Divergent:
		if segID >= 0 && int(segID) < len(segments) {
			seg := segments[segID]
			if microplates[seg.PlateA].Type == plates.Oceanic && microplates[seg.PlateB].Type == plates.Oceanic {
				return cfg.RidgeHeight * decay
			}
		}
		return -cfg.RiftDepth * decay
	case boundary.Transform:
		// Small, noise-textured perturbation only; no
		// persistent ridge or trench along strike-slip boundaries.
		return 0.1 * cfg.MountainScale * detailNoise.SampleGrid(float64(x), float64(y), 0.05, 2, 2.0, 0.5) * decay
	default:
		return 0
	}
}

// continentalBase returns +coast_amp deep in continental territory,
// -coast_amp deep in oceanic territory, with a smooth tanh taper across
// shelf_width cells of any boundary that separates a continental plate
// from an oceanic one. Boundaries between two
// plates of the same type (e.g. a continental collision) leave the base
// flat, since there is no coastline to taper there.
func continentalBase(cfg Config, ownType plates.Type, dist, shelfWidth float64, segID int32, segments []boundary.Segment, microplates []plates.Microplate) float64 {
	sign := 1.0
	if ownType != plates.Continental {
		sign = -1.0
	}
	if segID < 0 || int(segID) >= len(segments) {
		return cfg.CoastAmp * sign
	}
	seg := segments[segID]
	typeA := microplates[seg.PlateA].Type
	typeB := microplates[seg.PlateB].Type
	if typeA == typeB {
		return cfg.CoastAmp * sign
	}
	return cfg.CoastAmp * math.Tanh(sign*dist/shelfWidth)
}

func nonZero(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
