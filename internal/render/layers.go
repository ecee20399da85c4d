package render

import (
	"fmt"
	"image"
	"image/color"

	"worldgen-core/internal/boundary"
)

func renderPlates(f Fields) (*image.RGBA, error) {
	if f.PlateLabels == nil {
		return nil, fmt.Errorf("render: plates layer requires PlateLabels")
	}
	g := f.PlateLabels
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, plateLabelColor(g.Get(x, y)))
		}
	}
	return img, nil
}

func renderBoundaries(f Fields) (*image.RGBA, error) {
	if f.Boundary == nil {
		return nil, fmt.Errorf("render: boundaries layer requires Boundary")
	}
	w, h := f.Boundary.Width, f.Boundary.Height
	img := newRGBA(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, class, _, _, _ := f.Boundary.At(x, y)
			switch class {
			case boundary.Convergent:
				img.SetRGBA(x, y, colorConvergent)
			case boundary.Divergent:
				img.SetRGBA(x, y, colorDivergent)
			case boundary.Transform:
				img.SetRGBA(x, y, colorTransform)
			default:
				img.SetRGBA(x, y, colorOcean)
			}
		}
	}
	return img, nil
}

func renderDistance(f Fields) (*image.RGBA, error) {
	if f.Boundary == nil {
		return nil, fmt.Errorf("render: distance layer requires Boundary")
	}
	w, h := f.Boundary.Width, f.Boundary.Height
	img := newRGBA(w, h)
	maxDist := float32(0)
	for _, d := range f.Boundary.Distance {
		if d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		maxDist = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dist, _, _, _, _ := f.Boundary.At(x, y)
			t := float64(dist / maxDist)
			img.SetRGBA(x, y, lerpColor(colorConvergent, colorOcean, t))
		}
	}
	return img, nil
}

// heightColorRGBA maps a signed, roughly [-1,1] elevation value to a
// colour: ocean depths run dark-to-bright blue/trench, land runs
// lowland green through highland brown to snow-capped peaks.
func heightColorRGBA(e float32) color.RGBA {
	switch {
	case e < -0.3:
		return lerpColor(colorTrench, colorOcean, clamp01(float64(e+1)/0.7))
	case e < 0:
		return lerpColor(colorOcean, colorShallow, float64(e+0.3)/0.3)
	case e < 0.3:
		return lerpColor(colorLowland, colorHighland, float64(e)/0.3)
	default:
		return lerpColor(colorHighland, colorPeak, clamp01(float64(e-0.3)/0.7))
	}
}

func renderHeightmap(f Fields) (*image.RGBA, error) {
	if f.Elevation == nil {
		return nil, fmt.Errorf("render: heightmap layer requires Elevation")
	}
	g := f.Elevation
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, heightColorRGBA(g.Get(x, y)))
		}
	}
	return img, nil
}

func renderTemperature(f Fields) (*image.RGBA, error) {
	if f.Temperature == nil {
		return nil, fmt.Errorf("render: temperature layer requires Temperature")
	}
	g := f.Temperature
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := clamp01((float64(g.Get(x, y)) + 40) / 80)
			img.SetRGBA(x, y, lerpColor(colorCold, colorHot, t))
		}
	}
	return img, nil
}

func renderPrecipitation(f Fields) (*image.RGBA, error) {
	if f.Precip == nil {
		return nil, fmt.Errorf("render: precipitation layer requires Precip")
	}
	g := f.Precip
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, lerpColor(colorDryLand, colorWetLand, float64(g.Get(x, y))))
		}
	}
	return img, nil
}

func renderRivers(f Fields) (*image.RGBA, error) {
	if f.Hydro == nil || f.Elevation == nil {
		return nil, fmt.Errorf("render: rivers layer requires Hydro and Elevation")
	}
	g := f.Elevation
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, heightColorRGBA(g.Get(x, y)))
		}
	}

	rivers := f.Hydro.Rivers
	scaleX := float64(g.Width) / float64(rivers.Width)
	scaleY := float64(g.Height) / float64(rivers.Height)
	for ry := 0; ry < rivers.Height; ry++ {
		for rx := 0; rx < rivers.Width; rx++ {
			if rivers.Get(rx, ry) == 0 {
				continue
			}
			bx := int(float64(rx) * scaleX)
			by := int(float64(ry) * scaleY)
			img.SetRGBA(bx, by, colorRiver)
		}
	}
	return img, nil
}

// renderMap is the composite "natural colour" view: heightmap shading
// modulated by precipitation-driven vegetation tint where precipitation
// is available, rivers overlaid where hydrology has run.
func renderMap(f Fields) (*image.RGBA, error) {
	if f.Elevation == nil {
		return nil, fmt.Errorf("render: map layer requires Elevation")
	}
	g := f.Elevation
	img := newRGBA(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := heightColorRGBA(g.Get(x, y))
			if f.Precip != nil && g.Get(x, y) > 0 {
				wet := float64(f.Precip.Get(x, y))
				c = lerpColor(c, colorLowland, wet*0.4)
			}
			img.SetRGBA(x, y, c)
		}
	}
	if f.Hydro != nil {
		rivers := f.Hydro.Rivers
		scaleX := float64(g.Width) / float64(rivers.Width)
		scaleY := float64(g.Height) / float64(rivers.Height)
		for ry := 0; ry < rivers.Height; ry++ {
			for rx := 0; rx < rivers.Width; rx++ {
				if rivers.Get(rx, ry) == 0 {
					continue
				}
				bx := int(float64(rx) * scaleX)
				by := int(float64(ry) * scaleY)
				img.SetRGBA(bx, by, colorRiver)
			}
		}
	}
	return img, nil
}
