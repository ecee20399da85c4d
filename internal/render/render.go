// Package render produces colour-mapped image.RGBA buffers for each of
// the pipeline's named layers. It does no file I/O and
// depends only on stdlib image/color; PNG encoding is the orchestrator
// boundary's caller's job.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"worldgen-core/internal/boundary"
	"worldgen-core/internal/grid"
	"worldgen-core/internal/hydrology"
	"worldgen-core/internal/plates"
)

// Layer names accepted by Render / MapResult.Render.
const (
	LayerPlates        = "plates"
	LayerBoundaries    = "boundaries"
	LayerDistance      = "distance"
	LayerHeightmap     = "heightmap"
	LayerMap           = "map"
	LayerTemperature   = "temperature"
	LayerPrecipitation = "precipitation"
	LayerRivers        = "rivers"
)

// Fields bundles every grid a render layer might need. Not every layer
// reads every field; callers pass whatever stages have run.
type Fields struct {
	PlateLabels *grid.Grid[uint16]
	Microplates []plates.Microplate
	Boundary    *boundary.Field
	Elevation   *grid.Grid[float32]
	Temperature *grid.Grid[float32]
	Precip      *grid.Grid[float32]
	Hydro       *hydrology.Result
}

// Render dispatches to the colour mapping for the named layer. Returns
// an error for an unknown name or a layer whose required field is nil.
func Render(name string, f Fields) (*image.RGBA, error) {
	switch name {
	case LayerPlates:
		return renderPlates(f)
	case LayerBoundaries:
		return renderBoundaries(f)
	case LayerDistance:
		return renderDistance(f)
	case LayerHeightmap:
		return renderHeightmap(f)
	case LayerMap:
		return renderMap(f)
	case LayerTemperature:
		return renderTemperature(f)
	case LayerPrecipitation:
		return renderPrecipitation(f)
	case LayerRivers:
		return renderRivers(f)
	default:
		return nil, fmt.Errorf("render: unknown layer %q", name)
	}
}

func newRGBA(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// clamp01 clamps a float to [0, 1] before it is scaled into a byte
// channel.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func byteOf(v float64) uint8 { return uint8(clamp01(v) * 255) }

// lerpColor linearly interpolates two colours by t in [0, 1].
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

var (
	colorOcean      = color.RGBA{R: 20, G: 60, B: 140, A: 255}
	colorShallow    = color.RGBA{R: 60, G: 110, B: 180, A: 255}
	colorLowland    = color.RGBA{R: 80, G: 140, B: 70, A: 255}
	colorHighland   = color.RGBA{R: 160, G: 130, B: 80, A: 255}
	colorPeak       = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	colorTrench     = color.RGBA{R: 5, G: 15, B: 45, A: 255}
	colorCold       = color.RGBA{R: 40, G: 80, B: 220, A: 255}
	colorHot        = color.RGBA{R: 220, G: 50, B: 30, A: 255}
	colorDryLand    = color.RGBA{R: 180, G: 160, B: 90, A: 255}
	colorWetLand    = color.RGBA{R: 20, G: 90, B: 160, A: 255}
	colorRiver      = color.RGBA{R: 60, G: 160, B: 230, A: 255}
	colorConvergent = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	colorDivergent  = color.RGBA{R: 40, G: 200, B: 80, A: 255}
	colorTransform  = color.RGBA{R: 230, G: 200, B: 40, A: 255}
)

// plateLabelColor derives a stable categorical colour from a plate id
// via a golden-ratio hue walk, so adjacent ids never collide and the
// same id always maps to the same colour across runs.
func plateLabelColor(id uint16) color.RGBA {
	const goldenRatioConjugate = 0.61803398875
	hue := math.Mod(float64(id)*goldenRatioConjugate, 1.0)
	return hsvToRGB(hue, 0.55, 0.85)
}

func hsvToRGB(h, s, v float64) color.RGBA {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: byteOf(r), G: byteOf(g), B: byteOf(b), A: 255}
}
