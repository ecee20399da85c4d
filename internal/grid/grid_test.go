package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapX(t *testing.T) {
	g := New[int](10, 5)
	assert.Equal(t, 0, g.WrapX(10))
	assert.Equal(t, 9, g.WrapX(-1))
	assert.Equal(t, 5, g.WrapX(5))
}

func TestGetSetRoundTrip(t *testing.T) {
	g := New[float64](8, 8)
	g.Set(3, 4, 1.5)
	assert.Equal(t, 1.5, g.Get(3, 4))
}

func TestGetWrapsXNotY(t *testing.T) {
	g := New[int](8, 8)
	g.Set(0, 3, 42)
	assert.Equal(t, 42, g.Get(8, 3)) // wraps to x=0
	assert.Equal(t, 42, g.Get(-8, 3))
}

func TestClampY(t *testing.T) {
	g := New[int](4, 4)
	assert.Equal(t, 0, g.ClampY(-1))
	assert.Equal(t, 3, g.ClampY(4))
}

func TestNeighbors4Count(t *testing.T) {
	g := New[int](8, 8)
	n := g.Neighbors4(0, 0)
	assert.Len(t, n, 4)
	// x=0 west neighbour wraps to width-1
	assert.Equal(t, 7, n[3][0])
}

func TestNeighbors8DeterministicOrder(t *testing.T) {
	g := New[int](8, 8)
	n := g.Neighbors8(4, 4)
	expected := [8][2]int{{4, 3}, {5, 3}, {5, 4}, {5, 5}, {4, 5}, {3, 5}, {3, 4}, {3, 3}}
	assert.Equal(t, expected, n)
}

func TestCloneIsIndependent(t *testing.T) {
	g := New[int](4, 4)
	g.Set(1, 1, 9)
	c := g.Clone()
	c.Set(1, 1, 100)
	assert.Equal(t, 9, g.Get(1, 1))
	assert.Equal(t, 100, c.Get(1, 1))
}

func TestMapVisitsEveryCell(t *testing.T) {
	g := New[int](5, 5)
	g.Map(func(x, y int, v int) int { return x + y })
	assert.Equal(t, 8, g.Get(4, 4))
	assert.Equal(t, 0, g.Get(0, 0))
}
