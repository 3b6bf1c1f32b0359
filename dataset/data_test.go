package dataset

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
	"github.com/torvik/augmenta/imgio"
)

// writePNG drops a solid 4x6 (h x w) test image at path.
func writePNG(t *testing.T, path string, v uint8) {
	t.Helper()
	im, err := core.New(4, 6)
	require.NoError(t, err)
	im.Fill(core.Pixel{R: v, G: v, B: v})
	require.NoError(t, imgio.Write(path, im))
}

func emptyAnnots() *annot.Annotations {
	return annot.NewAnnotations(6, 4, annot.BBox)
}

func TestPackageID(t *testing.T) {
	a := NewPackage("img/a.png", emptyAnnots())
	b := NewPackage("img/b.png", emptyAnnots())
	c := NewPackage("img/a.png", emptyAnnots())

	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, a.ID(), c.ID())
	require.NoError(t, a.ID().Validate())
}

func TestPackageLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 200)

	as := emptyAnnots()
	label, err := annot.NewLabel(1, "car")
	require.NoError(t, err)
	require.NoError(t, as.Add(label, []annot.Point{{1, 1}, {4, 3}}))
	pkg := NewPackage(path, as)

	im, got, err := pkg.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, im.Height())
	require.Equal(t, 6, im.Width())
	require.Equal(t, core.Pixel{R: 200, G: 200, B: 200}, im.At(0, 0))

	// Load clones: mutating the result must not touch the package.
	got.Shift(2, 2)
	center := pkg.Annotations().All()[0].Boundary.Center()
	require.InDelta(t, 2.5, center[0], 1e-9)
	require.InDelta(t, 2.0, center[1], 1e-9)
}

func TestPackageLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewPackage("missing.png", emptyAnnots()).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDatasetFetchRound(t *testing.T) {
	pkgs := []*Package{
		NewPackage("a.png", emptyAnnots()),
		NewPackage("b.png", emptyAnnots()),
		NewPackage("c.png", emptyAnnots()),
	}
	ds, err := NewDataset(pkgs, nil)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	rng := rand.New(rand.NewSource(1))
	seen := make(map[string]int)
	for i := 0; i < 6; i++ {
		seen[ds.Fetch(rng).ImagePath()]++
	}
	// Two full rounds: every package served exactly twice.
	for _, p := range pkgs {
		require.Equal(t, 2, seen[p.ImagePath()], p.ImagePath())
	}
}

func TestDatasetFiltersOut(t *testing.T) {
	as := emptyAnnots()
	label, err := annot.NewLabel(1, "car")
	require.NoError(t, err)
	require.NoError(t, as.Add(label, []annot.Point{{0, 0}, {2, 2}}))

	f, err := ParseFilter("count(name=car)>=1")
	require.NoError(t, err)

	ds, err := NewDataset([]*Package{
		NewPackage("with.png", as),
		NewPackage("without.png", emptyAnnots()),
	}, []Filter{f})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	require.Equal(t, "with.png", ds.Packages()[0].ImagePath())

	_, err = NewDataset([]*Package{NewPackage("without.png", emptyAnnots())}, []Filter{f})
	require.ErrorIs(t, err, ErrNoPackages)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "train"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "val"), 0o755))

	writePNG(t, filepath.Join(dir, "train", "a.png"), 10)
	writePNG(t, filepath.Join(dir, "train", "b.png"), 20)
	writePNG(t, filepath.Join(dir, "val", "c.png"), 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train", "notes.txt"), []byte("x"), 0o644))

	sidecar := `kind: bbox
labels:
  - id: 1
    name: car
    points: [[1, 1], [4, 3]]
  - name: person
    points: [[0, 0], [2, 2]]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train", "a.yaml"), []byte(sidecar), 0o644))

	pkgs, err := Discover(dir, "train/*.png")
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	byName := make(map[string]*Package)
	for _, p := range pkgs {
		byName[filepath.Base(p.ImagePath())] = p
	}

	a := byName["a.png"]
	require.NotNil(t, a)
	require.Equal(t, 2, a.Annotations().Len())
	require.Equal(t, 6, a.Annotations().Width())
	require.Equal(t, 4, a.Annotations().Height())
	require.Equal(t, "car", a.Annotations().All()[0].Label.Name)
	require.Equal(t, annot.UnsetID, a.Annotations().All()[1].Label.ID)

	// No sidecar: empty annotations sized from the header.
	b := byName["b.png"]
	require.NotNil(t, b)
	require.Equal(t, 0, b.Annotations().Len())
	require.Equal(t, 6, b.Annotations().Width())
}

func TestWriteSidecarRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 30)

	as := emptyAnnots()
	car, err := annot.NewLabel(3, "car")
	require.NoError(t, err)
	require.NoError(t, as.Add(car, []annot.Point{{1, 0}, {5, 3}}))
	anon, err := annot.NewLabel(annot.UnsetID, "person")
	require.NoError(t, err)
	require.NoError(t, as.Add(anon, []annot.Point{{0, 0}, {2, 2}}))
	require.NoError(t, WriteSidecar(path, as))

	pkgs, err := Discover(dir, "")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	got := pkgs[0].Annotations()
	require.Equal(t, 2, got.Len())
	require.Equal(t, 3, got.All()[0].Label.ID)
	require.Equal(t, "car", got.All()[0].Label.Name)
	require.Equal(t, annot.UnsetID, got.All()[1].Label.ID)
	require.Equal(t, as.All()[0].Boundary.Points(), got.All()[0].Boundary.Points())
}

func TestDiscoverBadSidecar(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("kind: blob\n"), 0o644))

	_, err := Discover(dir, "")
	require.ErrorIs(t, err, ErrBadSidecar)
}
