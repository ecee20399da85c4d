package boundary

import (
	"math"

	"worldgen-core/internal/grid"
	"worldgen-core/internal/plates"
)

// Config bundles the boundary classification thresholds.
type Config struct {
	// ConvergenceThreshold is τ_c: the relative-velocity-onto-normal
	// projection magnitude above which a boundary cell is convergent or
	// divergent rather than transform.
	ConvergenceThreshold float64
}

// Extract scans plateLabels for neighbour disagreements and classifies
// each boundary cell. A boundary cell is any cell with a
// 4-neighbour whose plate id differs; classification uses the relative
// velocity of the two plates involved projected onto the local boundary
// normal (the normalised sum of the offsets toward every differing
// 4-neighbour). The other plate of the pair is the first differing
// plate encountered in N/S/E/W order.
func Extract(cfg Config, plateLabels *grid.Grid[uint16], microplates []plates.Microplate) *Extraction {
	w, h := plateLabels.Width, plateLabels.Height
	ext := newExtraction(w, h)

	segIndex := make(map[[2]uint16]int32)

	tau := cfg.ConvergenceThreshold
	if tau <= 0 {
		tau = 0.1
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := plateLabels.Get(x, y)

			var nvx, nvy float64
			var other uint16
			found := false
			for _, off := range grid.Offset4 {
				nx := plateLabels.WrapX(x + off[0])
				ny := y + off[1]
				if !plateLabels.InBoundsY(ny) {
					continue
				}
				q := plateLabels.Get(nx, ny)
				if q == p {
					continue
				}
				if !found {
					other = q
					found = true
				}
				nvx += float64(off[0])
				nvy += float64(off[1])
			}
			if !found {
				continue
			}
			nlen := math.Hypot(nvx, nvy)
			if nlen == 0 {
				nlen = 1
			}
			nvx, nvy = nvx/nlen, nvy/nlen

			a, b := p, other
			if a > b {
				a, b = b, a
			}
			key := [2]uint16{a, b}
			id, ok := segIndex[key]
			if !ok {
				id = int32(len(ext.Segments))
				segIndex[key] = id
				ext.Segments = append(ext.Segments, Segment{ID: int(id), PlateA: a, PlateB: b})
			}

			velP := microplates[p].Velocity
			velQ := microplates[other].Velocity
			dv := velP.Sub(velQ)
			proj := dv.Dot(plates.Vec2{X: nvx, Y: nvy})

			var kind Kind
			switch {
			case proj >= tau:
				kind = Convergent
			case proj <= -tau:
				kind = Divergent
			default:
				kind = Transform
			}

			typeP := microplates[p].Type
			typeQ := microplates[other].Type
			major := (typeP == plates.Continental && typeQ == plates.Continental) ||
				(typeP != typeQ && kind == Convergent)

			var sign int8
			if kind == Convergent {
				sign = overridingSign(typeP, typeQ, velP, velQ, nvx, nvy)
			}

			idx := y*w + x
			ext.Class[idx] = kind
			ext.Major[idx] = major
			ext.Sign[idx] = sign
			ext.SegmentID[idx] = id
		}
	}
	return ext
}

// overridingSign reports +1 if plate p (the cell's own plate) is the
// overriding plate at a convergent boundary, -1 otherwise: continental
// overrides oceanic; between same-type plates, the one whose velocity
// projects more strongly into the boundary wins.
func overridingSign(typeP, typeQ plates.Type, velP, velQ plates.Vec2, nx, ny float64) int8 {
	if typeP == plates.Continental && typeQ == plates.Oceanic {
		return 1
	}
	if typeP == plates.Oceanic && typeQ == plates.Continental {
		return -1
	}
	n := plates.Vec2{X: nx, Y: ny}
	into := plates.Vec2{X: -nx, Y: -ny}
	if velP.Dot(n) >= velQ.Dot(into) {
		return 1
	}
	return -1
}
