package climate

import "github.com/aquilax/go-perlin"

// moistureNoise wraps go-perlin for the aesthetic moisture-seed jitter
// in precipitation. The elevation and temperature noise terms go through
// grid.FBM instead, since their exact octave/lacunarity/gain behaviour
// and wrap periodicity are load-bearing for reproducibility.
type moistureNoise struct {
	p *perlin.Perlin
}

func newMoistureNoise(seed int64) *moistureNoise {
	return &moistureNoise{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (n *moistureNoise) Sample(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}
