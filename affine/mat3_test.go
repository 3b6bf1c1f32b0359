package affine_test

import (
	"math"
	"testing"

	"github.com/torvik/augmenta/affine"
)

const eps = 1e-9

// near reports whether a and b differ by less than eps.
func near(a, b float64) bool { return math.Abs(a-b) < eps }

// TestIdentity_Apply verifies the identity maps points onto themselves.
func TestIdentity_Apply(t *testing.T) {
	x, y := affine.Identity().Apply(3.5, -2)
	if !near(x, 3.5) || !near(y, -2) {
		t.Errorf("Identity.Apply(3.5,-2) = (%g,%g); want (3.5,-2)", x, y)
	}
}

// TestBuilders_Apply checks each elementary builder on a probe point.
func TestBuilders_Apply(t *testing.T) {
	cases := []struct {
		name  string
		m     affine.Mat3
		inX   float64
		inY   float64
		wantX float64
		wantY float64
	}{
		{"Scale", affine.Scale(2, 3), 1, 1, 2, 3},
		{"Translation", affine.Translation(-1, 4), 1, 1, 0, 5},
		{"Rotation90", affine.Rotation(90), 1, 0, 0, 1},
		{"Rotation180", affine.Rotation(180), 1, 0, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.m.Apply(tc.inX, tc.inY)
			if !near(x, tc.wantX) || !near(y, tc.wantY) {
				t.Errorf("Apply(%g,%g) = (%g,%g); want (%g,%g)",
					tc.inX, tc.inY, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

// TestCompose_Order verifies that Compose applies its arguments left-to-right.
func TestCompose_Order(t *testing.T) {
	// Scale by 2 first, then translate by (1, 0): (1,0) → (2,0) → (3,0).
	m := affine.Compose(affine.Scale(2, 2), affine.Translation(1, 0))
	x, y := m.Apply(1, 0)
	if !near(x, 3) || !near(y, 0) {
		t.Errorf("Compose order wrong: Apply(1,0) = (%g,%g); want (3,0)", x, y)
	}

	// Reversed order: (1,0) → (2,0) only after scaling the translated point.
	m = affine.Compose(affine.Translation(1, 0), affine.Scale(2, 2))
	x, _ = m.Apply(1, 0)
	if !near(x, 4) {
		t.Errorf("Compose reversed order: Apply(1,0).x = %g; want 4", x)
	}
}

// TestRotation_RoundTrip verifies that opposite rotations cancel.
func TestRotation_RoundTrip(t *testing.T) {
	m := affine.Compose(affine.Rotation(37), affine.Rotation(-37))
	pts := m.ApplyPoints([][2]float64{{5, 7}, {-3, 2}})
	want := [][2]float64{{5, 7}, {-3, 2}}
	for i := range pts {
		if !near(pts[i][0], want[i][0]) || !near(pts[i][1], want[i][1]) {
			t.Errorf("point %d = %v; want %v", i, pts[i], want[i])
		}
	}
}

// TestDistortion_PerspectiveDivision checks that distorted matrices divide by w.
func TestDistortion_PerspectiveDivision(t *testing.T) {
	// A pure distortion keeps w == 1, so no division happens.
	x, y := affine.Distortion(0.5, 0).Apply(2, 4)
	if !near(x, 2) || !near(y, 5) {
		t.Errorf("Distortion(0.5,0).Apply(2,4) = (%g,%g); want (2,5)", x, y)
	}
}
