package plates

import (
	"github.com/google/uuid"

	"worldgen-core/internal/rng"
)

// PropertiesConfig bundles the type and velocity assignment tunables.
type PropertiesConfig struct {
	ContinentalFraction float64 // target land fraction, pre-elevation (coarse)
	VelocityMagnitude   float64 // per-macroplate speed scale
}

// AssignProperties gives every microplate a type and a velocity.
// Each macroplate draws a dominant type and a land fraction biased
// around the global continental_fraction target; microplates mostly follow
// their macroplate's dominant type but a minority flip, producing islands
// inside an otherwise oceanic macroplate and vice versa.
func AssignProperties(cfg PropertiesConfig, macroplates []Macroplate, microSites [][2]float64, microMacroID []int, stream *rng.Stream) []Microplate {
	assignMacroDominantType(cfg, macroplates, stream)

	out := make([]Microplate, len(microSites))
	for i, site := range microSites {
		macroID := microMacroID[i]
		mp := &macroplates[macroID]

		// LandFraction is the continental share, so a continental
		// macroplate's minority flips to oceanic and an oceanic one's
		// minority flips to continental.
		typ := Oceanic
		if stream.NextF64() < mp.LandFraction {
			typ = Continental
		}

		vx, vy := stream.UnitDisk()
		vel := Vec2{X: vx * mp.Speed, Y: vy * mp.Speed}

		out[i] = Microplate{
			ID:       uint16(i),
			UUID:     newPlateUUID(stream),
			Seed:     [2]int{int(site[0]), int(site[1])},
			MacroID:  macroID,
			Type:     typ,
			Velocity: vel,
		}
	}
	return out
}

// assignMacroDominantType draws each macroplate's dominant type and
// per-macroplate land fraction so that, averaged over all macroplates, the
// expected continental coverage lands near continental_fraction.
func assignMacroDominantType(cfg PropertiesConfig, macroplates []Macroplate, stream *rng.Stream) {
	for i := range macroplates {
		mp := &macroplates[i]
		if stream.NextF64() < cfg.ContinentalFraction {
			mp.DominantType = Continental
			// A continental macroplate's own land fraction is biased high,
			// but not pinned to 1, so oceanic islands remain possible.
			mp.LandFraction = 0.6 + 0.35*stream.NextF64()
		} else {
			mp.DominantType = Oceanic
			mp.LandFraction = 0.05 + 0.25*stream.NextF64()
		}
		mag := cfg.VelocityMagnitude
		if mag <= 0 {
			mag = 1
		}
		mp.Speed = mag * (0.5 + 0.5*stream.NextF64())
	}
}

func oppositeType(t Type) Type {
	if t == Continental {
		return Oceanic
	}
	return Continental
}

// newPlateUUID derives a deterministic UUID from the stream rather than
// calling uuid.New(), which reads crypto/rand and would break
// reproducibility. A v4-shaped UUID built from two stream draws is sufficient
// for a stable, collision-free identifier.
func newPlateUUID(stream *rng.Stream) uuid.UUID {
	var u uuid.UUID
	hi := stream.NextU64()
	lo := stream.NextU64()
	for i := 0; i < 8; i++ {
		u[i] = byte(hi >> (8 * (7 - i)))
		u[8+i] = byte(lo >> (8 * (7 - i)))
	}
	u[6] = (u[6] & 0x0F) | 0x40 // version 4
	u[8] = (u[8] & 0x3F) | 0x80 // variant 10
	return u
}
