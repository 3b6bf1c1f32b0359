// Package affine implements the shared matrix algebra behind geometric
// augmentations: scaling, rotation, translation and perspective distortion
// composed into a single homogeneous matrix.
package affine

import "math"

// Mat3 is a 3×3 homogeneous transformation matrix, row-major:
// m[0] m[1] m[2] is the first row.
type Mat3 [9]float64

// Identity returns the identity transformation.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Scale returns a transformation scaling x by sx and y by sy.
func Scale(sx, sy float64) Mat3 {
	return Mat3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Rotation returns a counter-clockwise rotation about the origin by deg degrees.
func Rotation(deg float64) Mat3 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)

	return Mat3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// Translation returns a transformation shifting x by tx and y by ty.
func Translation(tx, ty float64) Mat3 {
	return Mat3{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

// Distortion returns a perspective shear with coefficients dx (applied to x
// from y) and dy (applied to y from x).
func Distortion(dx, dy float64) Mat3 {
	return Mat3{
		1, dy, 0,
		dx, 1, 0,
		0, 0, 1,
	}
}

// Mul returns m·n (n applied first, then m).
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*n[c] + m[r*3+1]*n[3+c] + m[r*3+2]*n[6+c]
		}
	}

	return out
}

// Compose folds the given matrices in application order: the first argument
// is applied to points first. Compose() returns Identity.
func Compose(ms ...Mat3) Mat3 {
	out := Identity()
	for _, m := range ms {
		out = m.Mul(out)
	}

	return out
}

// Apply maps the point (x, y) through m, performing the perspective division
// for distorted matrices. Points on the w=0 horizon map to (+Inf, +Inf).
func (m Mat3) Apply(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		return math.Inf(1), math.Inf(1)
	}

	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// ApplyPoints maps every (x, y) pair of pts through m into a new slice.
// Each element of pts is one point.
func (m Mat3) ApplyPoints(pts [][2]float64) [][2]float64 {
	out := make([][2]float64, len(pts))
	var x, y float64
	for i, p := range pts {
		x, y = m.Apply(p[0], p[1])
		out[i] = [2]float64{x, y}
	}

	return out
}
