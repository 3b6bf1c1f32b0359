package annot_test

import (
	"testing"

	"github.com/torvik/augmenta/annot"
)

// mustLabel builds a Label or fails the test.
func mustLabel(t *testing.T, id int, name string) annot.Label {
	t.Helper()
	l, err := annot.NewLabel(id, name)
	if err != nil {
		t.Fatalf("NewLabel(%d,%q) error: %v", id, name, err)
	}

	return l
}

// addBox appends a bbox annotation or fails the test.
func addBox(t *testing.T, as *annot.Annotations, l annot.Label, x0, y0, x1, y1 float64) {
	t.Helper()
	if err := as.Add(l, []annot.Point{{x0, y0}, {x1, y1}}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
}

// TestNewLabel_Empty verifies ErrEmptyLabel for a label with no id and no name.
func TestNewLabel_Empty(t *testing.T) {
	if _, err := annot.NewLabel(annot.UnsetID, ""); err == nil {
		t.Error("NewLabel(UnsetID, \"\") must fail")
	}
}

// TestFilter drops annotations by id and by name.
func TestFilter(t *testing.T) {
	as := annot.NewAnnotations(100, 100, annot.BBox)
	addBox(t, as, mustLabel(t, 1, "car"), 0, 0, 10, 10)
	addBox(t, as, mustLabel(t, 2, "bike"), 20, 20, 30, 30)
	addBox(t, as, mustLabel(t, 3, "bus"), 40, 40, 50, 50)

	as.Filter([]int{1}, []string{"bus"})
	if as.Len() != 1 {
		t.Fatalf("Len after Filter = %d; want 1", as.Len())
	}
	if got := as.All()[0].Label.Name; got != "bike" {
		t.Errorf("surviving label = %q; want \"bike\"", got)
	}
}

// TestCrop rebases the frame and shifts boundaries into the new origin.
func TestCrop(t *testing.T) {
	as := annot.NewAnnotations(100, 100, annot.BBox)
	addBox(t, as, mustLabel(t, 1, "car"), 30, 30, 60, 60)

	as.Crop(25, 25, 75, 75)
	if as.Width() != 50 || as.Height() != 50 {
		t.Fatalf("frame after Crop = (%d,%d); want (50,50)", as.Width(), as.Height())
	}
	pts := as.All()[0].Boundary.Points()
	if pts[0] != (annot.Point{5, 5}) || pts[1] != (annot.Point{35, 35}) {
		t.Errorf("cropped box = %v; want [[5 5] [35 35]]", pts)
	}
}

// TestCrop_DegeneratesOutside verifies a box fully outside the crop window
// turns invalid.
func TestCrop_DegeneratesOutside(t *testing.T) {
	as := annot.NewAnnotations(100, 100, annot.BBox)
	addBox(t, as, mustLabel(t, 1, "car"), 0, 0, 10, 10)

	as.Crop(50, 50, 100, 100)
	if as.All()[0].Valid {
		t.Error("box outside the crop window must be invalid")
	}
	as.Clean()
	if as.Len() != 0 {
		t.Errorf("Len after Clean = %d; want 0", as.Len())
	}
}

// TestMerge copies annotations across collections with re-clipping.
func TestMerge(t *testing.T) {
	a := annot.NewAnnotations(50, 50, annot.BBox)
	addBox(t, a, mustLabel(t, 1, "car"), 0, 0, 10, 10)
	b := annot.NewAnnotations(100, 100, annot.BBox)
	addBox(t, b, mustLabel(t, 2, "bike"), 40, 40, 90, 90)

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len after Merge = %d; want 2", a.Len())
	}
	// The merged box clips to a's 50×50 frame.
	pts := a.All()[1].Boundary.Points()
	if pts[1] != (annot.Point{50, 50}) {
		t.Errorf("merged box max corner = %v; want [50 50]", pts[1])
	}
}

// TestClone_Independent verifies deep-copy semantics.
func TestClone_Independent(t *testing.T) {
	as := annot.NewAnnotations(100, 100, annot.BBox)
	addBox(t, as, mustLabel(t, 1, "car"), 10, 10, 20, 20)

	cl := as.Clone()
	cl.Shift(5, 5)
	if pts := as.All()[0].Boundary.Points(); pts[0] != (annot.Point{10, 10}) {
		t.Errorf("original moved through clone: %v", pts)
	}
}
