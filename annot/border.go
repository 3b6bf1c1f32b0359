package annot

// Border is the image frame annotations are clipped against. Corner state
// tracks pending crops or extensions until Rebase folds them into the
// width/height base.
type Border struct {
	width  int
	height int

	xMin, yMin int
	xMax, yMax int
}

// NewBorder constructs a Border for an image of the given dimensions.
// Corners start at the full frame.
func NewBorder(width, height int) *Border {
	b := &Border{width: width, height: height}
	b.Reset()

	return b
}

// Width returns the base width of the frame.
func (b *Border) Width() int { return b.width }

// Height returns the base height of the frame.
func (b *Border) Height() int { return b.height }

// Area returns the base frame area in pixels².
func (b *Border) Area() int { return b.width * b.height }

// XMin returns the current left corner coordinate.
func (b *Border) XMin() int { return b.xMin }

// XMax returns the current right corner coordinate.
func (b *Border) XMax() int { return b.xMax }

// YMin returns the current top corner coordinate.
func (b *Border) YMin() int { return b.yMin }

// YMax returns the current bottom corner coordinate.
func (b *Border) YMax() int { return b.yMax }

// Set moves the corner points. It adapts the border to crops or extensions
// of the image; the corners stay in effect until Rebase.
func (b *Border) Set(xMin, yMin, xMax, yMax int) {
	b.xMin = xMin
	b.yMin = yMin
	b.xMax = xMax
	b.yMax = yMax
}

// Scale moves the corners to a frame scaled by xScale and yScale.
func (b *Border) Scale(xScale, yScale float64) {
	b.Set(0, 0, int(xScale*float64(b.width)), int(yScale*float64(b.height)))
}

// Reset restores the corners to the full base frame.
func (b *Border) Reset() {
	b.xMin, b.yMin = 0, 0
	b.xMax, b.yMax = b.width, b.height
}

// Rebase recomputes width and height from the current corners and resets
// them, making the cropped or extended frame the new base.
func (b *Border) Rebase() {
	b.width = b.xMax - b.xMin
	b.height = b.yMax - b.yMin
	b.Reset()
}

// Clone returns an independent copy of the border.
func (b *Border) Clone() *Border {
	cp := *b

	return &cp
}
