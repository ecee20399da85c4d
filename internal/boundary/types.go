// Package boundary implements BoundaryExtractor (neighbour-disagreement
// scan + convergent/divergent/transform classification) and DistanceField
// (jump flooding).
package boundary

// Kind classifies a boundary cell by relative plate motion projected onto
// the local boundary normal.
type Kind uint8

const (
	None Kind = iota
	Convergent
	Divergent
	Transform
)

// Segment is an unordered pair of plates (plate_a < plate_b) that share at
// least one boundary cell.
type Segment struct {
	ID             int
	PlateA, PlateB uint16
}

// Extraction is BoundaryExtractor's output: per-cell classification plus
// the set of distinct plate-pair segments discovered during the scan.
type Extraction struct {
	Width, Height int
	Class         []Kind  // None on non-boundary cells
	Major         []bool  // plate-type-pairing table, meaningful only where Class != None
	Sign          []int8  // +1/-1 overriding side for convergent cells, 0 otherwise
	SegmentID     []int32 // -1 on non-boundary cells
	Segments      []Segment
}

func newExtraction(w, h int) *Extraction {
	e := &Extraction{
		Width: w, Height: h,
		Class:     make([]Kind, w*h),
		Major:     make([]bool, w*h),
		Sign:      make([]int8, w*h),
		SegmentID: make([]int32, w*h),
	}
	for i := range e.SegmentID {
		e.SegmentID[i] = -1
	}
	return e
}

// Field is DistanceField's output: for every cell, the
// Euclidean distance to the nearest boundary cell plus that cell's
// classification, carried forward so elevation synthesis never has to
// re-walk the boundary scan.
type Field struct {
	Width, Height int
	Distance      []float32
	Class         []Kind
	Major         []bool
	Sign          []int8
	SegmentID     []int32
}

func newField(w, h int) *Field {
	f := &Field{
		Width: w, Height: h,
		Distance:  make([]float32, w*h),
		Class:     make([]Kind, w*h),
		Major:     make([]bool, w*h),
		Sign:      make([]int8, w*h),
		SegmentID: make([]int32, w*h),
	}
	return f
}

func (f *Field) At(x, y int) (dist float32, class Kind, major bool, sign int8, segID int32) {
	idx := y*f.Width + x
	return f.Distance[idx], f.Class[idx], f.Major[idx], f.Sign[idx], f.SegmentID[idx]
}
