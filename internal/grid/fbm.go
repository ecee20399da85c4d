package grid

// FBM is a multi-octave value-noise sampler. Unlike a wrapped library like
// go-perlin, every lattice value is a pure deterministic hash of its
// integer coordinates and the seed, so two FBM samplers built from the same
// seed produce bit-identical output on any platform.
type FBM struct {
	seed uint64
	// wrapX is the period, in base (octave-0) lattice units, at which the
	// x axis must repeat so that sampling at x=0 and x=wrapX produces the
	// same value and the cylinder seam stays continuous. Zero means the
	// sampler is not periodic (used for fields with no wrap requirement,
	// e.g. a one-off standalone texture).
	wrapX int
}

// NewFBM builds a value-noise sampler. wrapX should equal the grid width in
// the same units x will be sampled in; pass 0 for non-periodic sampling.
func NewFBM(seed uint64, wrapX int) *FBM {
	return &FBM{seed: seed, wrapX: wrapX}
}

// Sample evaluates fbm(x, y; octaves, lacunarity, gain):
// frequency *= lacunarity and amplitude *= gain each octave, output
// normalised by the sum of amplitudes so the result stays in roughly
// [-1, 1] and is mean-centred around 0. x wraps at x=wrapX.
func (f *FBM) Sample(x, y float64, octaves int, lacunarity, gain float64) float64 {
	return f.sample(x, y, f.wrapX, octaves, lacunarity, gain)
}

// SampleGrid evaluates the noise at grid-cell coordinates with a base
// frequency of scale cycles per cell. The frequency is quantised so an
// integer number of cycles spans the wrap width, which keeps the
// x=0/wrapX seam exact for any scale; a raw Sample(x*scale, ...) would
// only wrap after wrapX/scale cells and tear at the seam.
func (f *FBM) SampleGrid(x, y, scale float64, octaves int, lacunarity, gain float64) float64 {
	basePeriod := 0
	if f.wrapX > 0 {
		cycles := int(float64(f.wrapX)*scale + 0.5)
		if cycles < 1 {
			cycles = 1
		}
		scale = float64(cycles) / float64(f.wrapX)
		basePeriod = cycles
	}
	return f.sample(x*scale, y*scale, basePeriod, octaves, lacunarity, gain)
}

func (f *FBM) sample(x, y float64, basePeriod, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, freq, ampTotal float64
	amp, freq = 1, 1
	for o := 0; o < octaves; o++ {
		period := 0
		if basePeriod > 0 {
			// Each octave's lattice period scales with its frequency so the
			// seam stays exact at every octave.
			period = int(float64(basePeriod)*freq + 0.5)
			if period < 1 {
				period = 1
			}
		}
		sum += amp * f.latticeNoise2D(x*freq, y*freq, period)
		ampTotal += amp
		amp *= gain
		freq *= lacunarity
	}
	if ampTotal == 0 {
		return 0
	}
	return sum / ampTotal
}

// latticeNoise2D is bilinearly (smoothstep-faded) interpolated value noise
// over an integer lattice, periodic in x with the given period (0 = no
// periodicity).
func (f *FBM) latticeNoise2D(x, y float64, periodX int) float64 {
	x0 := floor(x)
	y0 := floor(y)
	tx := x - float64(x0)
	ty := y - float64(y0)

	x1 := x0 + 1
	y1 := y0 + 1

	v00 := f.latticeValue(wrapLattice(x0, periodX), y0)
	v10 := f.latticeValue(wrapLattice(x1, periodX), y0)
	v01 := f.latticeValue(wrapLattice(x0, periodX), y1)
	v11 := f.latticeValue(wrapLattice(x1, periodX), y1)

	sx := smoothstep(tx)
	sy := smoothstep(ty)

	ix0 := lerp(v00, v10, sx)
	ix1 := lerp(v01, v11, sx)
	return lerp(ix0, ix1, sy)
}

func wrapLattice(v, period int) int {
	if period <= 0 {
		return v
	}
	v %= period
	if v < 0 {
		v += period
	}
	return v
}

// latticeValue hashes a lattice node to a deterministic value in [-1, 1].
func (f *FBM) latticeValue(ix, iy int) float64 {
	h := hash2(uint64(int64(ix)), uint64(int64(iy)), f.seed)
	// Top 53 bits give a float64 in [0, 1); rescale to [-1, 1].
	u := float64(h>>11) / float64(1<<53)
	return u*2 - 1
}

// hash2 mixes two integer coordinates and a seed into one well-avalanched
// 64-bit value via splitmix64's finalizer, applied twice.
func hash2(a, b, seed uint64) uint64 {
	h := seed
	h = mix(h, a)
	h = mix(h, b)
	return h
}

func mix(z, salt uint64) uint64 {
	z += salt + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func floor(v float64) int {
	i := int(v)
	if v < float64(i) {
		i--
	}
	return i
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
