package augment

import (
	"math"

	"github.com/torvik/augmenta/affine"
	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
)

// Shift translates the image content by (DX, DY) pixels. Vacated regions
// are filled with core.Black; content shifted past the frame is discarded.
type Shift struct {
	DX, DY float64
}

// NewShift constructs a Shift by (dx, dy) pixels.
func NewShift(dx, dy float64) *Shift {
	return &Shift{DX: dx, DY: dy}
}

// Name implements Augmentation.
func (*Shift) Name() string { return "shift" }

// Apply implements Transform.
// Complexity: O(W×H).
func (t *Shift) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	dx, dy := int(math.Round(t.DX)), int(math.Round(t.DY))
	out, err := core.New(im.Height(), im.Width())
	if err != nil {
		return nil, nil, err
	}
	var sy, sx int
	for y := 0; y < im.Height(); y++ {
		sy = y - dy
		if sy < 0 || sy >= im.Height() {
			continue // row stays black
		}
		for x := 0; x < im.Width(); x++ {
			sx = x - dx
			if sx < 0 || sx >= im.Width() {
				continue
			}
			out.Set(y, x, im.At(sy, sx))
		}
	}
	if as != nil {
		as = as.Clone()
		as.Shift(t.DX, t.DY)
	}

	return out, as, nil
}

// Scale resamples the image by independent factors per axis using
// nearest-neighbor sampling. The output frame is (round(H×SY), round(W×SX)).
type Scale struct {
	SX, SY float64
}

// NewScale constructs a Scale. Returns ErrScaleFactor unless both factors
// are positive.
func NewScale(sx, sy float64) (*Scale, error) {
	if sx <= 0 || sy <= 0 {
		return nil, ErrScaleFactor
	}

	return &Scale{SX: sx, SY: sy}, nil
}

// Name implements Augmentation.
func (*Scale) Name() string { return "scale" }

// Apply implements Transform.
// Complexity: O(W'×H') of the output frame.
func (t *Scale) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out, err := resampleNearest(im, int(math.Round(float64(im.Height())*t.SY)), int(math.Round(float64(im.Width())*t.SX)))
	if err != nil {
		return nil, nil, err
	}
	if as != nil {
		as = as.Clone()
		as.ScaleBorder(t.SX, t.SY)
		as.RebaseBorder()
		as.Scale(t.SX, t.SY)
	}

	return out, as, nil
}

// Rotate turns the image by Deg degrees (positive clockwise on screen)
// about the frame center. The frame does not reshape: corners rotated out
// are discarded, corners rotated in are core.Black.
type Rotate struct {
	Deg float64
}

// NewRotate constructs a Rotate by deg degrees.
func NewRotate(deg float64) *Rotate {
	return &Rotate{Deg: deg}
}

// Name implements Augmentation.
func (*Rotate) Name() string { return "rotate" }

// Apply implements Transform. Pixels are pulled through the inverse
// rotation with nearest-neighbor sampling.
// Complexity: O(W×H).
func (t *Rotate) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	out, err := core.New(im.Height(), im.Width())
	if err != nil {
		return nil, nil, err
	}
	// Rotate about the pixel-center of the frame so right-angle turns map
	// the grid onto itself.
	cx := float64(im.Width()-1) / 2
	cy := float64(im.Height()-1) / 2
	inv := affine.Compose(
		affine.Translation(-cx, -cy),
		affine.Rotation(-t.Deg),
		affine.Translation(cx, cy),
	)
	var fx, fy float64
	var sx, sy int
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			fx, fy = inv.Apply(float64(x), float64(y))
			sx, sy = int(math.Round(fx)), int(math.Round(fy))
			if im.InBounds(sy, sx) {
				out.Set(y, x, im.At(sy, sx))
			}
		}
	}
	if as != nil {
		as = as.Clone()
		as.Rotate(t.Deg)
	}

	return out, as, nil
}

// Resize rescales the image to a fixed target frame. With PreserveAspect
// the content keeps its aspect ratio and the remainder of the frame is
// letterboxed with core.Black bars, split evenly per axis.
type Resize struct {
	TargetWidth    int
	TargetHeight   int
	PreserveAspect bool
}

// NewResize constructs a Resize to (targetWidth, targetHeight).
// Returns ErrTargetSize on non-positive targets.
func NewResize(targetWidth, targetHeight int, preserveAspect bool) (*Resize, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, ErrTargetSize
	}

	return &Resize{
		TargetWidth:    targetWidth,
		TargetHeight:   targetHeight,
		PreserveAspect: preserveAspect,
	}, nil
}

// Name implements Augmentation.
func (*Resize) Name() string { return "resize" }

// Apply implements Transform.
// Complexity: O(W'×H') of the target frame.
func (t *Resize) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	if !t.PreserveAspect {
		out, err := resampleNearest(im, t.TargetHeight, t.TargetWidth)
		if err != nil {
			return nil, nil, err
		}
		if as != nil {
			sx := float64(t.TargetWidth) / float64(im.Width())
			sy := float64(t.TargetHeight) / float64(im.Height())
			as = as.Clone()
			as.ScaleBorder(sx, sy)
			as.RebaseBorder()
			as.Scale(sx, sy)
		}

		return out, as, nil
	}

	// Uniform scale that fits the content into the target frame.
	s := math.Min(
		float64(t.TargetWidth)/float64(im.Width()),
		float64(t.TargetHeight)/float64(im.Height()),
	)
	w2 := int(math.Round(float64(im.Width()) * s))
	h2 := int(math.Round(float64(im.Height()) * s))
	if w2 < 1 {
		w2 = 1
	}
	if h2 < 1 {
		h2 = 1
	}
	content, err := resampleNearest(im, h2, w2)
	if err != nil {
		return nil, nil, err
	}

	// Compose onto the black target canvas; the bars are constant fill.
	out, err := core.New(t.TargetHeight, t.TargetWidth)
	if err != nil {
		return nil, nil, err
	}
	padX := (t.TargetWidth - w2) / 2
	padY := (t.TargetHeight - h2) / 2
	blit(out, content, padY, padX)

	if as != nil {
		as = as.Clone()
		as.ScaleBorder(s, s)
		as.RebaseBorder()
		as.Scale(s, s)
		as.SetBorder(0, 0, t.TargetWidth, t.TargetHeight)
		as.RebaseBorder()
		as.Shift(float64(padX), float64(padY))
	}

	return out, as, nil
}

// Crop cuts the fractional box [XMin,XMax)×[YMin,YMax) out of the image and
// makes it the new frame.
type Crop struct {
	XMin, YMin float64
	XMax, YMax float64
}

// NewCrop constructs a Crop from fractional coordinates.
// Returns ErrCropBox unless 0 ≤ min < max ≤ 1 holds per axis.
func NewCrop(xMin, yMin, xMax, yMax float64) (*Crop, error) {
	if xMin < 0 || yMin < 0 || xMin >= xMax || yMin >= yMax || xMax > 1 || yMax > 1 {
		return nil, ErrCropBox
	}

	return &Crop{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}, nil
}

// Name implements Augmentation.
func (*Crop) Name() string { return "crop" }

// Apply implements Transform.
// Complexity: O(area of the crop window).
func (t *Crop) Apply(im *core.Image, as *annot.Annotations) (*core.Image, *annot.Annotations, error) {
	if im == nil {
		return nil, nil, ErrNilImage
	}
	x0 := int(float64(im.Width()) * t.XMin)
	y0 := int(float64(im.Height()) * t.YMin)
	x1 := int(float64(im.Width()) * t.XMax)
	y1 := int(float64(im.Height()) * t.YMax)
	out, err := im.SubImage(core.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1})
	if err != nil {
		return nil, nil, err
	}
	if as != nil {
		as = as.Clone()
		as.Crop(x0, y0, x1, y1)
	}

	return out, as, nil
}

// resampleNearest rescales im to (h, w) with nearest-neighbor sampling.
func resampleNearest(im *core.Image, h, w int) (*core.Image, error) {
	out, err := core.New(h, w)
	if err != nil {
		return nil, err
	}
	var sy, sx int
	for y := 0; y < h; y++ {
		sy = y * im.Height() / h
		for x := 0; x < w; x++ {
			sx = x * im.Width() / w
			out.Set(y, x, im.At(sy, sx))
		}
	}

	return out, nil
}

// blit copies src into dst with its top-left corner at (y, x), clipping to
// the destination frame.
func blit(dst, src *core.Image, y, x int) {
	for sy := 0; sy < src.Height(); sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height() {
			continue
		}
		for sx := 0; sx < src.Width(); sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.Width() {
				continue
			}
			dst.Set(dy, dx, src.At(sy, sx))
		}
	}
}
