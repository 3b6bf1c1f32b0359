package annot

import (
	"math"

	"github.com/torvik/augmenta/affine"
)

// Boundary is a point set with a geometric interpretation, clipped against
// an image border. BBox boundaries canonicalize to two points: the min and
// the max corner.
type Boundary struct {
	kind   Kind
	pts    []Point
	border *Border
	valid  bool
}

// NewBoundary constructs a Boundary of the given kind over pts. The point
// slice is deep-copied. BBox point sets collapse to their min/max corners.
// Returns ErrNoPoints for an empty point set, ErrUnknownKind for an
// undeclared kind.
func NewBoundary(kind Kind, pts []Point, border *Border) (*Boundary, error) {
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	if kind != BBox && kind != KeyPoints && kind != Polygon {
		return nil, ErrUnknownKind
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	b := &Boundary{kind: kind, pts: cp, border: border}
	b.canonicalize()
	b.revalidate()

	return b, nil
}

// Kind returns the boundary kind.
func (b *Boundary) Kind() Kind { return b.kind }

// Points returns the current point set. BBox boundaries report exactly two
// points: min corner then max corner. The slice is live; callers must not
// mutate it.
func (b *Boundary) Points() []Point { return b.pts }

// Valid reports whether the boundary still encloses something meaningful.
// A BBox or Polygon degenerates when all x or all y collapse to one value;
// KeyPoints never degenerate.
func (b *Boundary) Valid() bool { return b.valid }

// canonicalize forces a BBox point set onto its min/max corners.
func (b *Boundary) canonicalize() {
	if b.kind != BBox {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range b.pts {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	b.pts = []Point{{minX, minY}, {maxX, maxY}}
}

// revalidate recomputes the degeneracy flag after a mutation.
func (b *Boundary) revalidate() {
	if b.kind == KeyPoints {
		b.valid = true

		return
	}
	sameX, sameY := true, true
	for _, p := range b.pts[1:] {
		if p[0] != b.pts[0][0] {
			sameX = false
		}
		if p[1] != b.pts[0][1] {
			sameY = false
		}
	}
	b.valid = !sameX && !sameY
}

// Center returns the midpoint between the min and max extent of the points.
func (b *Boundary) Center() Point {
	minX, minY, maxX, maxY := b.extent()

	return Point{(minX + maxX) / 2, (minY + maxY) / 2}
}

// Width returns the horizontal extent of the point set.
func (b *Boundary) Width() float64 {
	minX, _, maxX, _ := b.extent()

	return maxX - minX
}

// Height returns the vertical extent of the point set.
func (b *Boundary) Height() float64 {
	_, minY, _, maxY := b.extent()

	return maxY - minY
}

// Area returns the enclosed area in pixels²: width×height for BBox, the
// shoelace area for Polygon, 0 for KeyPoints.
func (b *Boundary) Area() float64 {
	switch b.kind {
	case BBox:
		return (b.pts[1][0] - b.pts[0][0]) * (b.pts[1][1] - b.pts[0][1])
	case Polygon:
		return shoelace(b.pts)
	default:
		return 0
	}
}

// extent returns the min/max x and y over all points.
func (b *Boundary) extent() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range b.pts {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}

	return minX, minY, maxX, maxY
}

// shoelace computes the absolute polygon area over pts.
func shoelace(pts []Point) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}

	return math.Abs(sum) / 2
}

// Shift translates every point by (dx, dy).
func (b *Boundary) Shift(dx, dy float64) {
	for i := range b.pts {
		b.pts[i][0] += dx
		b.pts[i][1] += dy
	}
	b.canonicalize()
	b.revalidate()
}

// ScalePoints multiplies x coordinates by sx and y coordinates by sy.
func (b *Boundary) ScalePoints(sx, sy float64) {
	for i := range b.pts {
		b.pts[i][0] *= sx
		b.pts[i][1] *= sy
	}
	b.canonicalize()
	b.revalidate()
}

// Rotate turns the point set by deg degrees about the center of the border
// frame. Positive angles rotate clockwise on screen: with the y axis
// pointing down, that is the plain mathematical rotation matrix.
func (b *Boundary) Rotate(deg float64) {
	cx := float64(b.border.Width()) / 2
	cy := float64(b.border.Height()) / 2
	m := affine.Compose(
		affine.Translation(-cx, -cy),
		affine.Rotation(deg),
		affine.Translation(cx, cy),
	)
	for i := range b.pts {
		b.pts[i][0], b.pts[i][1] = m.Apply(b.pts[i][0], b.pts[i][1])
	}
	b.canonicalize()
	b.revalidate()
}

// Clip clamps every point to the current border corners. A boundary pushed
// fully outside the frame collapses onto an edge and turns invalid.
func (b *Boundary) Clip() {
	xMin, xMax := float64(b.border.XMin()), float64(b.border.XMax())
	yMin, yMax := float64(b.border.YMin()), float64(b.border.YMax())
	for i := range b.pts {
		b.pts[i][0] = math.Min(math.Max(b.pts[i][0], xMin), xMax)
		b.pts[i][1] = math.Min(math.Max(b.pts[i][1], yMin), yMax)
	}
	b.canonicalize()
	b.revalidate()
}

// clone returns a deep copy bound to the given border.
func (b *Boundary) clone(border *Border) *Boundary {
	pts := make([]Point, len(b.pts))
	copy(pts, b.pts)

	return &Boundary{kind: b.kind, pts: pts, border: border, valid: b.valid}
}
