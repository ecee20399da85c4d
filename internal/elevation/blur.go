package elevation

import (
	"math"

	"worldgen-core/internal/grid"
)

// GaussianBlur applies a separable Gaussian blur with the given sigma
// to soften seams between tectonic/noise layers: first a
// wrap-on-x horizontal pass, then a clamp-on-y vertical pass.
func GaussianBlur(g *grid.Grid[float32], sigma float64) {
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	w, h := g.Width, g.Height
	tmp := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sum += kernel[k+radius] * float64(g.Get(g.WrapX(x+k), y))
			}
			tmp[y*w+x] = float32(sum)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				yy := clampY(y+k, h)
				sum += kernel[k+radius] * float64(tmp[yy*w+x])
			}
			g.Set(x, y, float32(sum))
		}
	}
}

func clampY(y, h int) int {
	if y < 0 {
		return 0
	}
	if y >= h {
		return h - 1
	}
	return y
}

// gaussianKernel builds a normalised 1-D kernel of radius ceil(3*sigma).
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
