package hydrology

import (
	"math"

	"worldgen-core/internal/grid"
)

// CarveConfig bundles the valley-carving kernel tunables.
type CarveConfig struct {
	Radius int
	Depth  float64
}

// CarveValleys subtracts a radial Gaussian valley kernel at every river
// cell from the base-resolution elevation, the kernel depth scaled by
// log(1+accumulation) so confluences carve deeper than headwaters
// river/accum are at hydrology (upscaled) resolution;
// base is the original elevation grid the carve is reprojected onto.
func CarveValleys(cfg CarveConfig, base *grid.Grid[float32], river *grid.Grid[uint8], accum *grid.Grid[float32]) *grid.Grid[float32] {
	radius := cfg.Radius
	if radius <= 0 {
		radius = 2
	}
	depth := cfg.Depth
	if depth <= 0 {
		depth = 0.05
	}

	hw, hh := river.Width, river.Height
	bw, bh := base.Width, base.Height
	kernel := gaussianRing(radius)

	delta := grid.New[float32](bw, bh)

	for hy := 0; hy < hh; hy++ {
		for hx := 0; hx < hw; hx++ {
			if river.Get(hx, hy) == 0 {
				continue
			}
			bx := hx * bw / hw
			by := hy * bh / hh
			scale := depth * math.Log1p(float64(accum.Get(hx, hy)))

			for j := -radius; j <= radius; j++ {
				for i := -radius; i <= radius; i++ {
					w := kernel[(j+radius)*(2*radius+1)+(i+radius)]
					if w == 0 {
						continue
					}
					dx, dy := bx+i, by+j
					if dy < 0 || dy >= bh {
						continue
					}
					idx := delta.Index(dx, dy)
					cur := delta.GetIdx(idx)
					delta.SetIdx(idx, cur+float32(w*scale))
				}
			}
		}
	}

	out := grid.New[float32](bw, bh)
	baseCells := base.Cells()
	deltaCells := delta.Cells()
	outCells := out.Cells()
	for i := range outCells {
		v := baseCells[i] - deltaCells[i]
		outCells[i] = v
	}
	return out
}

// gaussianRing builds a normalised (2r+1)x(2r+1) Gaussian kernel, peak
// at the centre, for use as a radial valley-carving weight.
func gaussianRing(radius int) []float64 {
	size := 2*radius + 1
	sigma := float64(radius) / 2
	if sigma <= 0 {
		sigma = 0.5
	}
	kernel := make([]float64, size*size)
	var sum float64
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			d2 := float64(i*i + j*j)
			v := math.Exp(-d2 / (2 * sigma * sigma))
			kernel[(j+radius)*size+(i+radius)] = v
			sum += v
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
