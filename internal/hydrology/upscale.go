// Package hydrology upscales the base elevation field, fills depressions
// with a Barnes priority flood, derives D8 flow direction and
// accumulation, extracts a river network, and carves valleys back into
// the base elevation. It is the most expensive stage and
// is run separately from Generate via GenerateRivers so callers can
// skip it for a cheap preview.
package hydrology

import (
	"worldgen-core/internal/grid"
)

// UpscaleFactor is the fixed ratio between base resolution and the
// hydrology working resolution (W* = UpscaleFactor*W).
const UpscaleFactor = 8

// Upscale bicubic-interpolates elev up to UpscaleFactor times its width
// and height, then perturbs it with a low-amplitude meander FBM so
// straight slopes develop sinuosity before flow routing.
func Upscale(elev *grid.Grid[float32], meanderAmp float64, meander *grid.FBM) *grid.Grid[float32] {
	w, h := elev.Width, elev.Height
	bw, bh := w*UpscaleFactor, h*UpscaleFactor
	out := grid.New[float32](bw, bh)

	for by := 0; by < bh; by++ {
		srcY := float64(by) / UpscaleFactor
		for bx := 0; bx < bw; bx++ {
			srcX := float64(bx) / UpscaleFactor
			v := bicubicSample(elev, srcX, srcY)
			if meanderAmp != 0 {
				v += float32(meanderAmp * meander.SampleGrid(float64(bx), float64(by), 0.05, 2, 2.0, 0.5))
			}
			out.Set(bx, by, v)
		}
	}
	return out
}

// bicubicSample evaluates elev at fractional coordinates (x, y) using a
// 4x4 Catmull-Rom convolution, wrapping on x and clamping on y to match
// the grid's own topology.
func bicubicSample(g *grid.Grid[float32], x, y float64) float32 {
	x0 := int(x)
	y0 := int(y)
	fx := x - float64(x0)
	fy := y - float64(y0)

	var rows [4]float64
	for j := -1; j <= 2; j++ {
		var samples [4]float64
		for i := -1; i <= 2; i++ {
			samples[i+1] = float64(g.Get(x0+i, y0+j))
		}
		rows[j+1] = cubicInterp(samples, fx)
	}
	return float32(cubicInterp(rows, fy))
}

// cubicInterp is the classic Catmull-Rom spline through four equally
// spaced samples p[0..3] at t in [0,1] between p[1] and p[2].
func cubicInterp(p [4]float64, t float64) float64 {
	a := -0.5*p[0] + 1.5*p[1] - 1.5*p[2] + 0.5*p[3]
	b := p[0] - 2.5*p[1] + 2.0*p[2] - 0.5*p[3]
	c := -0.5*p[0] + 0.5*p[2]
	d := p[1]
	return ((a*t+b)*t+c)*t + d
}
