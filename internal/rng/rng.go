// Package rng provides deterministic, bit-exact pseudo-random streams.
//
// Every stream is a splitmix-style generator seeded from a master seed mixed
// with an FNV-1a hash of a caller-supplied label. Streams never share state:
// a Stream is forked by label, never shared across goroutines.
package rng

import (
	"hash/fnv"
	"math"
	"math/bits"
)

// Stream is a deterministic 64-bit splitmix generator.
type Stream struct {
	state uint64

	// seed is the state the stream started from; Fork and ForkIndexed
	// derive from it, so draws made before a fork do not change the fork.
	seed uint64

	// haveGauss/gauss cache the second value of a Box-Muller pair so two
	// consecutive Gauss() calls cost one pair of uniform draws, not two.
	haveGauss bool
	gauss     float64
}

// New creates the master stream for a seed.
func New(seed uint64) *Stream {
	return &Stream{state: seed, seed: seed}
}

// Fork derives an independent stream from label, deterministic for a fixed
// (seed, label) pair regardless of call order or platform.
func (s *Stream) Fork(label string) *Stream {
	return New(mix(s.seed, fnvHash(label)))
}

// ForkIndexed forks a sub-stream for the i-th instance of label (rows,
// tiles, per-cell jobs), avoiding label string concatenation in hot loops.
func (s *Stream) ForkIndexed(label string, i int) *Stream {
	h := fnvHash(label)
	h = mix64(h, uint64(i)+0x9E3779B97F4A7C15)
	return New(mix(s.seed, h))
}

func fnvHash(label string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return h.Sum64()
}

// mix combines a state and a label hash into a new seed via splitmix's own
// avalanche step, so the result is as well distributed as any other
// splitmix output.
func mix(seed, labelHash uint64) uint64 {
	return mix64(seed^0xD6E8FEB86659FD93, labelHash)
}

// mix64 is the splitmix64 avalanche (finalizer) step applied to an arbitrary
// 64-bit input, used both to advance the stream and to combine seeds.
func mix64(z, salt uint64) uint64 {
	z += salt
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// NextU64 advances the stream and returns the next uniform uint64.
func (s *Stream) NextU64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// NextU32 returns the high 32 bits of a splitmix64 draw (splitmix32 variant).
func (s *Stream) NextU32() uint32 {
	return uint32(s.NextU64() >> 32)
}

// NextF32 returns a uniform float32 in [0, 1).
func (s *Stream) NextF32() float32 {
	// 24 significant bits is enough precision for a float32 mantissa.
	return float32(s.NextU32()>>8) / float32(1<<24)
}

// NextF64 returns a uniform float64 in [0, 1).
func (s *Stream) NextF64() float64 {
	return float64(s.NextU64()>>11) / float64(1<<53)
}

// NextSigned32 returns a uniform float32 in [-1, 1).
func (s *Stream) NextSigned32() float32 {
	return s.NextF32()*2 - 1
}

// NextSigned64 returns a uniform float64 in [-1, 1).
func (s *Stream) NextSigned64() float64 {
	return s.NextF64()*2 - 1
}

// IntN returns a uniform int in [0, n).
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	// Lemire's bounded-range reduction avoids modulo bias.
	hi, _ := bits.Mul64(s.NextU64(), uint64(n))
	return int(hi)
}

// Gauss returns a standard-normal sample via the Box-Muller polar method.
func (s *Stream) Gauss() float64 {
	if s.haveGauss {
		s.haveGauss = false
		return s.gauss
	}
	var x, y, r2 float64
	for {
		x = s.NextSigned64()
		y = s.NextSigned64()
		r2 = x*x + y*y
		if r2 > 0 && r2 < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(r2) / r2)
	s.gauss = y * mul
	s.haveGauss = true
	return x * mul
}

// UnitDisk returns a uniform random point (x, y) inside the unit disk.
func (s *Stream) UnitDisk() (float64, float64) {
	for {
		x := s.NextSigned64()
		y := s.NextSigned64()
		if x*x+y*y <= 1 {
			return x, y
		}
	}
}
