package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFBMDeterministic(t *testing.T) {
	a := NewFBM(42, 256)
	b := NewFBM(42, 256)

	for x := 0.0; x < 20; x += 1.3 {
		for y := 0.0; y < 20; y += 1.7 {
			assert.Equal(t, a.Sample(x, y, 4, 2.0, 0.5), b.Sample(x, y, 4, 2.0, 0.5))
		}
	}
}

func TestFBMDifferentSeedsDiverge(t *testing.T) {
	a := NewFBM(1, 256)
	b := NewFBM(2, 256)
	assert.NotEqual(t, a.Sample(10.3, 4.2, 4, 2.0, 0.5), b.Sample(10.3, 4.2, 4, 2.0, 0.5))
}

func TestFBMWrapSeamContinuity(t *testing.T) {
	period := 64
	f := NewFBM(7, period)
	for y := 0.0; y < 10; y++ {
		left := f.Sample(0, y, 5, 2.0, 0.5)
		right := f.Sample(float64(period), y, 5, 2.0, 0.5)
		assert.InDelta(t, left, right, 1e-9)
	}
}

func TestFBMSampleGridSeamContinuity(t *testing.T) {
	const w = 96
	f := NewFBM(13, w)
	// 0.07*96 is not an integer, so a naive Sample(x*0.07) would tear at
	// the seam; SampleGrid must quantise the frequency and stay exact.
	for y := 0.0; y < 8; y++ {
		left := f.SampleGrid(0, y, 0.07, 4, 2.0, 0.5)
		right := f.SampleGrid(w, y, 0.07, 4, 2.0, 0.5)
		assert.InDelta(t, left, right, 1e-9)
	}
}

func TestFBMBoundedRange(t *testing.T) {
	f := NewFBM(99, 128)
	for x := 0.0; x < 40; x += 0.37 {
		for y := 0.0; y < 40; y += 0.41 {
			v := f.Sample(x, y, 5, 2.0, 0.5)
			assert.GreaterOrEqual(t, v, -1.0001)
			assert.LessOrEqual(t, v, 1.0001)
		}
	}
}

func TestFBMMeanCenteredApproximatelyZero(t *testing.T) {
	f := NewFBM(55, 512)
	n := 0
	sum := 0.0
	for x := 0.0; x < 512; x += 1.0 {
		for y := 0.0; y < 64; y += 1.0 {
			sum += f.Sample(x*0.05, y*0.05, 4, 2.0, 0.5)
			n++
		}
	}
	mean := sum / float64(n)
	assert.True(t, math.Abs(mean) < 0.15, "mean=%f", mean)
}

func TestFBMSmoothNotDiscontinuousAtLatticeBoundary(t *testing.T) {
	f := NewFBM(3, 0)
	a := f.Sample(0.999, 1.0, 1, 2.0, 0.5)
	b := f.Sample(1.001, 1.0, 1, 2.0, 0.5)
	assert.InDelta(t, a, b, 0.05)
}
