// Package core defines the Image raster, the Pixel sample type,
// and sentinel errors shared by all raster operations.
package core

import "errors"

// Channels is the number of color channels per sample. Images are always RGB.
const Channels = 3

// Sentinel errors for raster operations.
var (
	// ErrEmptyImage indicates requested dimensions with no rows or no columns.
	ErrEmptyImage = errors.New("core: image must have at least one row and one column")
	// ErrBufferSize indicates a pixel buffer whose length does not match height×width×Channels.
	ErrBufferSize = errors.New("core: buffer length does not match height×width×channels")
	// ErrBounds indicates a rectangle that exceeds the image frame.
	ErrBounds = errors.New("core: rectangle out of image bounds")
	// ErrStackShape indicates stacked images disagreeing on the shared dimension.
	ErrStackShape = errors.New("core: stacked images must share the stacking dimension")
)

// Pixel is one color sample in RGB order.
type Pixel struct {
	R, G, B uint8
}

// Black is the constant fill color for dropout patches and vacated regions.
var Black = Pixel{}

// Rect is a half-open rectangle [X0,X1)×[Y0,Y1) in image coordinates:
// x runs along the width axis, y along the height axis, origin top-left.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Empty reports whether r encloses no pixels.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Image is a rectangular grid of color samples in image notation:
// axis order (height, width, channel), RGB channel order, one byte per
// channel. The buffer is contiguous and row-major over the height axis.
// The channel order never changes after construction.
type Image struct {
	height int
	width  int
	pix    []uint8 // len == height*width*Channels
}

// Height returns the number of pixel rows.
func (im *Image) Height() int { return im.height }

// Width returns the number of pixel columns.
func (im *Image) Width() int { return im.width }

// Frame returns the full image rectangle [0,Width)×[0,Height).
func (im *Image) Frame() Rect {
	return Rect{X0: 0, Y0: 0, X1: im.width, Y1: im.height}
}

// Pix exposes the underlying buffer in image notation. The slice is live:
// writes through it mutate the image. Length is Height×Width×Channels.
func (im *Image) Pix() []uint8 { return im.pix }

// offset maps (y, x) to the buffer index of the R channel of that sample.
func (im *Image) offset(y, x int) int {
	return (y*im.width + x) * Channels
}
