package plates

import (
	"math"

	"worldgen-core/internal/rng"
)

// SeedConfig bundles the dart-throwing tunables.
type SeedConfig struct {
	Width, Height  int
	NumMacroplates int
	NumMicroplates int
	// DartBudgetMultiplier caps the total darts thrown at this multiple of
	// the requested site count before seeding gives up.
	DartBudgetMultiplier int
}

// site is an accepted dart-throw position, stored by the spatial hash below
// to keep rejection tests cheap even at num_microplates up to 4000 on an
// 8192-wide grid.
type site struct {
	x, y float64
}

// bucketHash accelerates nearest-neighbour rejection tests for dart
// throwing: points are filed into cells of side `cell`, and a candidate
// only needs to scan the 3x3 neighbourhood of buckets (wrapping on x).
type bucketHash struct {
	width, height int
	cell          float64
	cols, rows    int
	buckets       map[int][]int
	pts           []site
}

func newBucketHash(width, height int, cell float64) *bucketHash {
	if cell < 1 {
		cell = 1
	}
	cols := int(math.Ceil(float64(width) / cell))
	rows := int(math.Ceil(float64(height) / cell))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &bucketHash{width: width, height: height, cell: cell, cols: cols, rows: rows, buckets: make(map[int][]int)}
}

func (b *bucketHash) bucketOf(x, y float64) (int, int) {
	bx := int(x/b.cell) % b.cols
	if bx < 0 {
		bx += b.cols
	}
	by := int(y / b.cell)
	if by < 0 {
		by = 0
	}
	if by >= b.rows {
		by = b.rows - 1
	}
	return bx, by
}

func (b *bucketHash) key(bx, by int) int { return by*b.cols + bx }

func (b *bucketHash) insert(x, y float64) {
	idx := len(b.pts)
	b.pts = append(b.pts, site{x, y})
	bx, by := b.bucketOf(x, y)
	k := b.key(bx, by)
	b.buckets[k] = append(b.buckets[k], idx)
}

// nearestWithin reports whether any inserted point lies within minDist of
// (x, y), respecting the wrap-on-x topology.
func (b *bucketHash) nearestWithin(x, y, minDist float64) bool {
	bx, by := b.bucketOf(x, y)
	reach := int(math.Ceil(minDist/b.cell)) + 1
	for dby := -reach; dby <= reach; dby++ {
		yy := by + dby
		if yy < 0 || yy >= b.rows {
			continue
		}
		for dbx := -reach; dbx <= reach; dbx++ {
			xx := (bx + dbx) % b.cols
			if xx < 0 {
				xx += b.cols
			}
			for _, idx := range b.buckets[b.key(xx, yy)] {
				p := b.pts[idx]
				if toroidalDist(b.width, x, y, p.x, p.y) < minDist {
					return true
				}
			}
		}
	}
	return false
}

// toroidalDist is the cylinder distance metric: wraps on x, does not wrap
// on y.
func toroidalDist(width int, ax, ay, bx, by float64) float64 {
	dx := math.Abs(ax - bx)
	w := float64(width)
	if dx > w/2 {
		dx = w - dx
	}
	dy := ay - by
	return math.Hypot(dx, dy)
}

// SeedMacroplates throws darts uniformly at random, rejecting any candidate
// closer than minSpacing to an already-accepted site, until count sites are
// accepted or the dart budget is exhausted.
func SeedMacroplates(cfg SeedConfig, stream *rng.Stream) [][2]float64 {
	area := float64(cfg.Width * cfg.Height)
	minSpacing := math.Sqrt(area/float64(maxInt(cfg.NumMacroplates, 1))) * 0.6

	budget := cfg.DartBudgetMultiplier
	if budget < 1 {
		budget = 200
	}
	maxDarts := cfg.NumMacroplates * budget

	hash := newBucketHash(cfg.Width, cfg.Height, minSpacing)
	sites := make([][2]float64, 0, cfg.NumMacroplates)

	darts := 0
	for len(sites) < cfg.NumMacroplates && darts < maxDarts {
		darts++
		x := stream.NextF64() * float64(cfg.Width)
		y := stream.NextF64() * float64(cfg.Height)
		if hash.nearestWithin(x, y, minSpacing) {
			continue
		}
		hash.insert(x, y)
		sites = append(sites, [2]float64{x, y})
	}
	return sites
}

// SeedMicroplates dart-throws num_microplates sites with spacing that
// shrinks near macroplate boundaries: r(x,y) ∝ base_r *
// (0.5 + 0.5 * d_to_nearest_two_macroplates_ratio), concentrating seeds
// along future plate borders.
func SeedMicroplates(cfg SeedConfig, macroSites [][2]float64, stream *rng.Stream) [][2]float64 {
	area := float64(cfg.Width * cfg.Height)
	baseR := math.Sqrt(area/float64(maxInt(cfg.NumMicroplates, 1))) * 0.7

	budget := cfg.DartBudgetMultiplier
	if budget < 1 {
		budget = 60
	}
	maxDarts := cfg.NumMicroplates * budget

	// Bucket on the smallest possible spacing (boundary-adjacent darts use
	// up to half baseR) so the acceptance test never misses a close
	// neighbour because of an oversized bucket.
	hash := newBucketHash(cfg.Width, cfg.Height, math.Max(baseR*0.5, 1))
	sites := make([][2]float64, 0, cfg.NumMicroplates)

	darts := 0
	for len(sites) < cfg.NumMicroplates && darts < maxDarts {
		darts++
		x := stream.NextF64() * float64(cfg.Width)
		y := stream.NextF64() * float64(cfg.Height)

		// ratio -> 1 at a macroplate boundary, so 1-ratio shrinks the
		// spacing toward baseR/2 there and widens it toward baseR inland.
		ratio := boundaryProximityRatio(cfg.Width, x, y, macroSites)
		r := baseR * (0.5 + 0.5*(1-ratio))

		if hash.nearestWithin(x, y, r) {
			continue
		}
		hash.insert(x, y)
		sites = append(sites, [2]float64{x, y})
	}
	return sites
}

// boundaryProximityRatio returns d1/d2, the ratio of the distance to the
// nearest macroplate site over the distance to the second nearest. Near a
// macroplate boundary the two are comparable (ratio -> 1); deep inside a
// macroplate's territory the nearest dominates (ratio -> 0).
func boundaryProximityRatio(width int, x, y float64, macroSites [][2]float64) float64 {
	if len(macroSites) == 0 {
		return 1
	}
	d1, d2 := math.Inf(1), math.Inf(1)
	for _, m := range macroSites {
		d := toroidalDist(width, x, y, m[0], m[1])
		if d < d1 {
			d2 = d1
			d1 = d
		} else if d < d2 {
			d2 = d
		}
	}
	if math.IsInf(d2, 1) || d2 == 0 {
		return 1
	}
	return d1 / d2
}

// NearestMacroplate returns the index of the macroplate site closest to
// (x, y) under the cylinder metric, used to assign each microplate its
// macroplate id and inherited type/velocity bias.
func NearestMacroplate(width int, x, y float64, macroSites [][2]float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, m := range macroSites {
		d := toroidalDist(width, x, y, m[0], m[1])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
