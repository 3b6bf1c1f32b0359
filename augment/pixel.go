package augment

import (
	"math/rand"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
)

// Dropout overwrites Count random rectangular patches with core.Black.
// Patch edge lengths are drawn uniformly from [MinFrac, MaxFrac] of the
// corresponding image dimension. Patches may overlap and may extend past
// the frame; the fill is always a constant block, never sampled content.
// Annotations are left untouched — occlusion does not move boundaries.
type Dropout struct {
	Count   int
	MinFrac float64
	MaxFrac float64

	rng *rand.Rand
}

// NewDropout constructs a Dropout of count patches sized within
// [minFrac, maxFrac]. Returns ErrPatchRange unless 0 < min ≤ max ≤ 1 and
// count > 0, ErrNilRand without a source.
func NewDropout(count int, minFrac, maxFrac float64, rng *rand.Rand) (*Dropout, error) {
	if count <= 0 || minFrac <= 0 || minFrac > maxFrac || maxFrac > 1 {
		return nil, ErrPatchRange
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	return &Dropout{Count: count, MinFrac: minFrac, MaxFrac: maxFrac, rng: rng}, nil
}

// Name implements Augmentation.
func (*Dropout) Name() string { return "dropout" }

// Reseeded implements Randomized.
func (t *Dropout) Reseeded(rng *rand.Rand) Augmentation {
	c := *t
	c.rng = rng

	return &c
}

// Apply implements Transform.
// Complexity: O(W×H + Count×patch area).
func (t *Dropout) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	span := t.MaxFrac - t.MinFrac
	var pw, ph, x0, y0 int
	for i := 0; i < t.Count; i++ {
		pw = int((t.MinFrac + span*t.rng.Float64()) * float64(im.Width()))
		ph = int((t.MinFrac + span*t.rng.Float64()) * float64(im.Height()))
		if pw < 1 {
			pw = 1
		}
		if ph < 1 {
			ph = 1
		}
		x0 = t.rng.Intn(im.Width())
		y0 = t.rng.Intn(im.Height())
		out.FillRect(core.Rect{X0: x0, Y0: y0, X1: x0 + pw, Y1: y0 + ph}, core.Black)
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}

// Brighten adds Delta to every channel of every sample, saturating at the
// uint8 range.
type Brighten struct {
	Delta int
}

// NewBrighten constructs a Brighten by delta ∈ [-255, 255].
// Returns ErrBadParam outside that range.
func NewBrighten(delta int) (*Brighten, error) {
	if delta < -255 || delta > 255 {
		return nil, ErrBadParam
	}

	return &Brighten{Delta: delta}, nil
}

// Name implements Augmentation.
func (*Brighten) Name() string { return "brighten" }

// Apply implements Transform.
// Complexity: O(W×H).
func (t *Brighten) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	pix := out.Pix()
	for i := range pix {
		pix[i] = clamp8(int(pix[i]) + t.Delta)
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}

// Saturate scales the chroma of every sample about its luma: Factor 0
// produces grayscale, 1 is identity, above 1 exaggerates color.
type Saturate struct {
	Factor float64
}

// NewSaturate constructs a Saturate. Returns ErrBadParam on negative factors.
func NewSaturate(factor float64) (*Saturate, error) {
	if factor < 0 {
		return nil, ErrBadParam
	}

	return &Saturate{Factor: factor}, nil
}

// Name implements Augmentation.
func (*Saturate) Name() string { return "saturate" }

// Apply implements Transform. Luma uses the Rec. 601 weights.
// Complexity: O(W×H).
func (t *Saturate) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	pix := out.Pix()
	var luma float64
	for i := 0; i < len(pix); i += core.Channels {
		luma = 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
		pix[i] = clamp8(int(luma + t.Factor*(float64(pix[i])-luma) + 0.5))
		pix[i+1] = clamp8(int(luma + t.Factor*(float64(pix[i+1])-luma) + 0.5))
		pix[i+2] = clamp8(int(luma + t.Factor*(float64(pix[i+2])-luma) + 0.5))
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}

// Invert replaces every channel value v with 255-v.
type Invert struct{}

// NewInvert constructs an Invert.
func NewInvert() *Invert { return &Invert{} }

// Name implements Augmentation.
func (*Invert) Name() string { return "invert" }

// Apply implements Transform.
// Complexity: O(W×H).
func (t *Invert) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	pix := out.Pix()
	for i := range pix {
		pix[i] = 255 - pix[i]
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}

// Noise perturbs every channel by a uniform offset in [-Amplitude, Amplitude].
type Noise struct {
	Amplitude int

	rng *rand.Rand
}

// NewNoise constructs a Noise with the given amplitude ∈ [1, 255].
// Returns ErrBadParam outside that range, ErrNilRand without a source.
func NewNoise(amplitude int, rng *rand.Rand) (*Noise, error) {
	if amplitude < 1 || amplitude > 255 {
		return nil, ErrBadParam
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	return &Noise{Amplitude: amplitude, rng: rng}, nil
}

// Name implements Augmentation.
func (*Noise) Name() string { return "noise" }

// Reseeded implements Randomized.
func (t *Noise) Reseeded(rng *rand.Rand) Augmentation {
	c := *t
	c.rng = rng

	return &c
}

// Apply implements Transform.
// Complexity: O(W×H).
func (t *Noise) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	pix := out.Pix()
	span := 2*t.Amplitude + 1
	for i := range pix {
		pix[i] = clamp8(int(pix[i]) + t.rng.Intn(span) - t.Amplitude)
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}

// Blur applies a box blur of the given radius: every sample becomes the
// mean of the (2R+1)² window around it, window clipped at the frame.
type Blur struct {
	Radius int
}

// NewBlur constructs a Blur. Returns ErrBadParam for non-positive radii.
func NewBlur(radius int) (*Blur, error) {
	if radius <= 0 {
		return nil, ErrBadParam
	}

	return &Blur{Radius: radius}, nil
}

// Name implements Augmentation.
func (*Blur) Name() string { return "blur" }

// Apply implements Transform.
// Complexity: O(W×H×R²); fine for augmentation radii, which stay small.
func (t *Blur) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out := im.Clone()
	var sumR, sumG, sumB, n int
	var p core.Pixel
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			sumR, sumG, sumB, n = 0, 0, 0, 0
			for wy := y - t.Radius; wy <= y+t.Radius; wy++ {
				for wx := x - t.Radius; wx <= x+t.Radius; wx++ {
					if !im.InBounds(wy, wx) {
						continue
					}
					p = im.At(wy, wx)
					sumR += int(p.R)
					sumG += int(p.G)
					sumB += int(p.B)
					n++
				}
			}
			out.Set(y, x, core.Pixel{
				R: uint8((sumR + n/2) / n),
				G: uint8((sumG + n/2) / n),
				B: uint8((sumB + n/2) / n),
			})
		}
	}
	if as != nil {
		as = as.Clone()
	}

	return out, as, nil
}
