package orchestrator

import (
	"image"
	"time"

	"github.com/google/uuid"

	"worldgen-core/internal/boundary"
	"worldgen-core/internal/grid"
	"worldgen-core/internal/hydrology"
	"worldgen-core/internal/plates"
	"worldgen-core/internal/render"
)

// StageTiming records one stage's wall-clock duration. Name is one of
// the canonical stage names or "TOTAL".
type StageTiming struct {
	Name string
	Ms   float64
}

// MapResult is generate's full output: every intermediate field plus the
// timing list, produced by a single Generate/GenerateRivers invocation
// and immutable once returned.
type MapResult struct {
	RunID  uuid.UUID
	Params Params

	PlateLabels *grid.Grid[uint16]
	Plates      plates.Set
	Boundary    *boundary.Field
	Elevation   *grid.Grid[float32]
	Temperature *grid.Grid[float32]
	Precip      *grid.Grid[float32]
	Hydro       *hydrology.Result

	Timings []StageTiming
}

// Render dispatches to internal/render for one of the named layers:
// plates, boundaries, distance, heightmap, map, temperature,
// precipitation, rivers. MapResult.Elevation already reflects the
// valley-carved field once GenerateRivers has run, so heightmap/map/
// rivers render the post-carve surface without any extra plumbing.
func (m *MapResult) Render(name string) (*image.RGBA, error) {
	return render.Render(name, render.Fields{
		PlateLabels: m.PlateLabels,
		Microplates: m.Plates.Microplates,
		Boundary:    m.Boundary,
		Elevation:   m.Elevation,
		Temperature: m.Temperature,
		Precip:      m.Precip,
		Hydro:       m.Hydro,
	})
}

// elapsedMs is a small helper so every stage call reports its timing the
// same way.
func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
