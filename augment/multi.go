package augment

import (
	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
)

// Mosaic stitches exactly four images into one 2×2 grid. All inputs are
// first resized to the frame of the smallest-area input, aspect preserved
// (letterboxed with core.Black). Layout: input 0 top-left, 3 top-right,
// 1 bottom-left, 2 bottom-right.
type Mosaic struct{}

// NewMosaic constructs a Mosaic.
func NewMosaic() *Mosaic { return &Mosaic{} }

// Name implements Augmentation.
func (*Mosaic) Name() string { return "mosaic" }

// Arity implements MultiTransform: a mosaic consumes four images.
func (*Mosaic) Arity() int { return 4 }

// ApplyAll implements MultiTransform.
// Complexity: O(W×H) of the stitched result.
func (t *Mosaic) ApplyAll(ims []*core.Image, ass []*annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if len(ims) != t.Arity() || len(ass) != t.Arity() {
		return nil, nil, ErrArity
	}
	for _, im := range ims {
		if im == nil {
			return nil, nil, ErrNilImage
		}
	}

	// The unify frame comes from the smallest-area input.
	uw, uh := ims[0].Width(), ims[0].Height()
	for _, im := range ims[1:] {
		if im.Width()*im.Height() < uw*uh {
			uw, uh = im.Width(), im.Height()
		}
	}
	resizer, err := NewResize(uw, uh, true)
	if err != nil {
		return nil, nil, err
	}

	prepped := make([]*core.Image, t.Arity())
	preppedAs := make([]*annot.Annotations, t.Arity())
	for i, im := range ims {
		if im.Width() == uw && im.Height() == uh {
			prepped[i], preppedAs[i] = im, ass[i]
			continue
		}
		prepped[i], preppedAs[i], err = resizer.Apply(im, ass[i])
		if err != nil {
			return nil, nil, err
		}
	}

	top, err := core.HStack(prepped[0], prepped[3])
	if err != nil {
		return nil, nil, err
	}
	bottom, err := core.HStack(prepped[1], prepped[2])
	if err != nil {
		return nil, nil, err
	}
	out, err := core.VStack(top, bottom)
	if err != nil {
		return nil, nil, err
	}

	merged := mosaicAnnots(preppedAs, uw, uh)

	return out, merged, nil
}

// mosaicAnnots shifts each quadrant's annotations into place and merges
// them into one collection over the doubled frame. Quadrants with nil
// annotations contribute nothing.
func mosaicAnnots(ass []*annot.Annotations, uw, uh int) *annot.Annotations {
	// Quadrant offsets follow the stitch layout.
	offsets := [4][2]float64{
		{0, 0},                     // 0: top-left
		{0, float64(uh)},           // 1: bottom-left
		{float64(uw), float64(uh)}, // 2: bottom-right
		{float64(uw), 0},           // 3: top-right
	}
	var merged *annot.Annotations
	for i, as := range ass {
		if as == nil {
			continue
		}
		shifted := as.Clone()
		shifted.ScaleBorder(2, 2)
		shifted.RebaseBorder()
		shifted.Shift(offsets[i][0], offsets[i][1])
		if merged == nil {
			merged = annot.NewAnnotations(uw*2, uh*2, shifted.Kind())
		}
		merged.Merge(shifted)
	}

	return merged
}

// MixUp blends exactly two images of equal dimensions into one convex
// combination: out = λ·a + (1-λ)·b. Annotations of both inputs are unioned.
type MixUp struct {
	Lambda float64
}

// NewMixUp constructs a MixUp with blending weight lambda.
// Returns ErrLambdaRange unless 0.4 ≤ lambda ≤ 0.6.
func NewMixUp(lambda float64) (*MixUp, error) {
	if lambda < 0.4 || lambda > 0.6 {
		return nil, ErrLambdaRange
	}

	return &MixUp{Lambda: lambda}, nil
}

// Name implements Augmentation.
func (*MixUp) Name() string { return "mixup" }

// Arity implements MultiTransform: a mixup consumes two images.
func (*MixUp) Arity() int { return 2 }

// ApplyAll implements MultiTransform.
// Complexity: O(W×H).
func (t *MixUp) ApplyAll(ims []*core.Image, ass []*annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if len(ims) != t.Arity() || len(ass) != t.Arity() {
		return nil, nil, ErrArity
	}
	a, b := ims[0], ims[1]
	if a == nil || b == nil {
		return nil, nil, ErrNilImage
	}
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, nil, ErrShapeMismatch
	}

	out := a.Clone()
	op, ap, bp := out.Pix(), a.Pix(), b.Pix()
	for i := range op {
		op[i] = clamp8(int(t.Lambda*float64(ap[i]) + (1-t.Lambda)*float64(bp[i]) + 0.5))
	}

	var merged *annot.Annotations
	if ass[0] != nil {
		merged = ass[0].Clone()
		if ass[1] != nil {
			merged.Merge(ass[1])
		}
	} else if ass[1] != nil {
		merged = ass[1].Clone()
	}

	return out, merged, nil
}
