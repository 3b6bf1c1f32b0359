package augment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/augment"
	"github.com/torvik/augmenta/core"
)

// solid builds an h×w image filled with one value per channel.
func solid(t *testing.T, h, w int, v uint8) *core.Image {
	t.Helper()
	im, err := core.New(h, w)
	require.NoError(t, err)
	im.Fill(core.Pixel{R: v, G: v, B: v})

	return im
}

// TestMosaic_Stitch verifies quadrant layout and annotation placement.
func TestMosaic_Stitch(t *testing.T) {
	ims := []*core.Image{
		solid(t, 2, 2, 10), // top-left
		solid(t, 2, 2, 20), // bottom-left
		solid(t, 2, 2, 30), // bottom-right
		solid(t, 2, 2, 40), // top-right
	}
	ass := make([]*annot.Annotations, 4)
	ass[0] = annot.NewAnnotations(2, 2, annot.BBox)
	label, err := annot.NewLabel(1, "probe")
	require.NoError(t, err)
	require.NoError(t, ass[0].Add(label, []annot.Point{{0, 0}, {2, 2}}))
	ass[2] = annot.NewAnnotations(2, 2, annot.BBox)
	require.NoError(t, ass[2].Add(label, []annot.Point{{0, 0}, {1, 1}}))

	out, outAs, err := augment.NewMosaic().ApplyAll(ims, ass)
	require.NoError(t, err)

	require.Equal(t, 4, out.Height())
	require.Equal(t, 4, out.Width())
	require.Equal(t, uint8(10), out.At(0, 0).R, "input 0 lands top-left")
	require.Equal(t, uint8(40), out.At(0, 3).R, "input 3 lands top-right")
	require.Equal(t, uint8(20), out.At(3, 0).R, "input 1 lands bottom-left")
	require.Equal(t, uint8(30), out.At(3, 3).R, "input 2 lands bottom-right")

	require.Equal(t, 2, outAs.Len())
	require.Equal(t, 4, outAs.Width())
	// Quadrant 2 (bottom-right) box shifts by (+2, +2).
	pts := outAs.All()[1].Boundary.Points()
	require.Equal(t, annot.Point{2, 2}, pts[0])
	require.Equal(t, annot.Point{3, 3}, pts[1])
}

// TestMosaic_ResizesLargerInputs verifies inputs unify to the smallest frame.
func TestMosaic_ResizesLargerInputs(t *testing.T) {
	ims := []*core.Image{
		solid(t, 2, 2, 10),
		solid(t, 4, 4, 20),
		solid(t, 2, 2, 30),
		solid(t, 2, 2, 40),
	}
	out, _, err := augment.NewMosaic().ApplyAll(ims, make([]*annot.Annotations, 4))
	require.NoError(t, err)
	require.Equal(t, 4, out.Height(), "larger input must shrink to the 2×2 unify frame")
	require.Equal(t, uint8(20), out.At(2, 0).R)
}

// TestMosaic_Arity verifies the four-input contract.
func TestMosaic_Arity(t *testing.T) {
	_, _, err := augment.NewMosaic().ApplyAll(
		[]*core.Image{solid(t, 1, 1, 1)},
		make([]*annot.Annotations, 1),
	)
	require.ErrorIs(t, err, augment.ErrArity)
}

// TestMixUp_Blend verifies the convex combination and annotation union.
func TestMixUp_Blend(t *testing.T) {
	a := solid(t, 1, 1, 100)
	b := solid(t, 1, 1, 200)
	asA := annot.NewAnnotations(1, 1, annot.KeyPoints)
	label, err := annot.NewLabel(1, "p")
	require.NoError(t, err)
	require.NoError(t, asA.Add(label, []annot.Point{{0, 0}}))
	asB := annot.NewAnnotations(1, 1, annot.KeyPoints)
	require.NoError(t, asB.Add(label, []annot.Point{{1, 1}}))

	mx, err := augment.NewMixUp(0.5)
	require.NoError(t, err)
	out, outAs, err := mx.ApplyAll([]*core.Image{a, b}, []*annot.Annotations{asA, asB})
	require.NoError(t, err)

	require.Equal(t, uint8(150), out.At(0, 0).R)
	require.Equal(t, 2, outAs.Len(), "annotations of both inputs union")
	// Inputs stay untouched.
	require.Equal(t, uint8(100), a.At(0, 0).R)
}

// TestMixUp_Validation verifies lambda range, arity, and shape checks.
func TestMixUp_Validation(t *testing.T) {
	_, err := augment.NewMixUp(0.3)
	require.ErrorIs(t, err, augment.ErrLambdaRange)
	_, err = augment.NewMixUp(0.7)
	require.ErrorIs(t, err, augment.ErrLambdaRange)

	mx, err := augment.NewMixUp(0.4)
	require.NoError(t, err)

	_, _, err = mx.ApplyAll([]*core.Image{solid(t, 1, 1, 1)}, make([]*annot.Annotations, 1))
	require.ErrorIs(t, err, augment.ErrArity)

	_, _, err = mx.ApplyAll(
		[]*core.Image{solid(t, 1, 1, 1), solid(t, 2, 2, 1)},
		make([]*annot.Annotations, 2),
	)
	require.ErrorIs(t, err, augment.ErrShapeMismatch)
}

// TestInflation verifies the data-volume contract per transform family.
func TestInflation(t *testing.T) {
	require.Equal(t, 1.0, augment.Inflation(augment.NewShift(1, 1)))
	require.Equal(t, 0.25, augment.Inflation(augment.NewMosaic()))
	mx, err := augment.NewMixUp(0.5)
	require.NoError(t, err)
	require.Equal(t, 0.5, augment.Inflation(mx))
}
