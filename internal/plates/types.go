// Package plates implements variable-density Poisson-disk plate seeding,
// noise-weighted Dijkstra growth, and plate property assignment.
package plates

import "github.com/google/uuid"

// Type distinguishes continental from oceanic crust.
type Type uint8

const (
	Oceanic Type = iota
	Continental
)

// Vec2 is a 2-D vector; used for plate velocities.
type Vec2 struct {
	X, Y float64
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Macroplate is a coarse continent/ocean grouping shared by a cluster of
// microplates.
type Macroplate struct {
	ID           int
	Seed         [2]int
	DominantType Type
	// LandFraction is the fraction of this macroplate's microplates that
	// are continental, biased around the global continental_fraction
	// target so islands (continental plates inside an oceanic macroplate,
	// and vice versa) remain possible.
	LandFraction float64
	Speed        float64 // per-macroplate velocity magnitude shared by its microplates
}

// Microplate is the fine fracture unit every cell belongs to exactly one
// of.
type Microplate struct {
	ID       uint16
	UUID     uuid.UUID
	Seed     [2]int
	MacroID  int
	Type     Type
	Velocity Vec2
}

// Set is the plate table produced by seeding and property assignment: the
// macroplates plus one microplate per id. The label grid produced by Grow
// is kept separately.
type Set struct {
	Macroplates []Macroplate
	Microplates []Microplate
}
