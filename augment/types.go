// Package augment defines the transform contracts and sentinel errors
// shared by all augmentations.
package augment

import (
	"errors"
	"math/rand"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
)

// Sentinel errors for augmentation construction and application.
var (
	// ErrNilImage indicates Apply was called without an image.
	ErrNilImage = errors.New("augment: image must not be nil")
	// ErrArity indicates a MultiTransform received the wrong number of inputs.
	ErrArity = errors.New("augment: wrong number of inputs for multi-image transform")
	// ErrShapeMismatch indicates multi-image inputs that disagree on dimensions.
	ErrShapeMismatch = errors.New("augment: input images must share dimensions")
	// ErrCropBox indicates a fractional crop box violating 0 ≤ min < max ≤ 1.
	ErrCropBox = errors.New("augment: crop box must satisfy 0 ≤ min < max ≤ 1")
	// ErrScaleFactor indicates a zero or negative scale factor.
	ErrScaleFactor = errors.New("augment: scale factors must be positive")
	// ErrTargetSize indicates a non-positive resize target.
	ErrTargetSize = errors.New("augment: resize target must be positive")
	// ErrLambdaRange indicates a MixUp lambda outside [0.4, 0.6].
	ErrLambdaRange = errors.New("augment: mixup lambda must lie in [0.4, 0.6]")
	// ErrPatchRange indicates dropout patch fractions violating 0 < min ≤ max ≤ 1.
	ErrPatchRange = errors.New("augment: dropout patch fractions must satisfy 0 < min ≤ max ≤ 1")
	// ErrNilRand indicates a randomized transform constructed without a source.
	ErrNilRand = errors.New("augment: randomized transform requires a rand source")
	// ErrBadParam indicates a parameter that failed validation for a named transform.
	ErrBadParam = errors.New("augment: bad transform parameter")
	// ErrUnknownTransform indicates a transform name absent from the registry.
	ErrUnknownTransform = errors.New("augment: unknown transform name")
)

// Augmentation is the common currency of the pipeline package: every
// transform, single- or multi-image, reports its registry name.
type Augmentation interface {
	Name() string
}

// Transform mutates one image and its annotations. Implementations return
// fresh values and leave their inputs untouched; a nil as skips annotation
// bookkeeping.
type Transform interface {
	Augmentation
	Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error)
}

// MultiTransform combines Arity images into one. The slices must have
// exactly Arity elements each; ass entries may be nil.
type MultiTransform interface {
	Augmentation
	Arity() int
	ApplyAll(ims []*core.Image, ass []*annot.Annotations) (*core.Image, *annot.Annotations, error)
}

// Randomized is implemented by transforms that consume randomness during
// Apply. Reseeded returns a copy bound to rng, leaving the receiver
// untouched. Callers that apply transforms concurrently must give each
// goroutine its own reseeded copy: *rand.Rand is not goroutine-safe.
type Randomized interface {
	Augmentation
	Reseeded(rng *rand.Rand) Augmentation
}

// Inflation reports how a transform changes data volume: 1 for single-image
// transforms, 1/Arity for multi-image ones. Inflation never exceeds 1 —
// augmentations only deflate.
func Inflation(a Augmentation) float64 {
	if mt, ok := a.(MultiTransform); ok {
		return 1 / float64(mt.Arity())
	}

	return 1
}

// clamp8 saturates v into the uint8 range.
func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}

	return uint8(v)
}
