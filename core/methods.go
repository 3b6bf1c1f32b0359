package core

// InBounds reports whether (y, x) lies within the image frame.
// Complexity: O(1).
func (im *Image) InBounds(y, x int) bool {
	return y >= 0 && y < im.height && x >= 0 && x < im.width
}

// At returns the sample at row y, column x.
// Out-of-range coordinates are a programmer error and panic.
// Complexity: O(1).
func (im *Image) At(y, x int) Pixel {
	o := im.offset(y, x)

	return Pixel{R: im.pix[o], G: im.pix[o+1], B: im.pix[o+2]}
}

// Set overwrites the sample at row y, column x.
// Out-of-range coordinates are a programmer error and panic.
// Complexity: O(1).
func (im *Image) Set(y, x int, p Pixel) {
	o := im.offset(y, x)
	im.pix[o] = p.R
	im.pix[o+1] = p.G
	im.pix[o+2] = p.B
}

// Clone returns a deep copy of the image. Mutating the clone never affects
// the original.
// Complexity: O(W×H) time and memory.
func (im *Image) Clone() *Image {
	pix := make([]uint8, len(im.pix))
	copy(pix, im.pix)

	return &Image{height: im.height, width: im.width, pix: pix}
}

// Fill overwrites every sample with p.
// Complexity: O(W×H).
func (im *Image) Fill(p Pixel) {
	for i := 0; i < len(im.pix); i += Channels {
		im.pix[i] = p.R
		im.pix[i+1] = p.G
		im.pix[i+2] = p.B
	}
}

// clip returns r intersected with the image frame.
func (im *Image) clip(r Rect) Rect {
	if r.X0 < 0 {
		r.X0 = 0
	}
	if r.Y0 < 0 {
		r.Y0 = 0
	}
	if r.X1 > im.width {
		r.X1 = im.width
	}
	if r.Y1 > im.height {
		r.Y1 = im.height
	}

	return r
}

// FillRect overwrites every sample inside r with p. The rectangle is clipped
// to the image frame first, so patches extending past the border are legal.
// This is the dropout primitive: the region is replaced by a constant block,
// no content is sampled from elsewhere in the image.
// Complexity: O(area of r).
func (im *Image) FillRect(r Rect, p Pixel) {
	r = im.clip(r)
	if r.Empty() {
		return
	}
	var o int
	for y := r.Y0; y < r.Y1; y++ {
		o = im.offset(y, r.X0)
		for x := r.X0; x < r.X1; x++ {
			im.pix[o] = p.R
			im.pix[o+1] = p.G
			im.pix[o+2] = p.B
			o += Channels
		}
	}
}

// SubImage returns a deep copy of the region r. Unlike FillRect, the
// rectangle must lie fully inside the frame: returns ErrBounds otherwise,
// ErrEmptyImage if r encloses no pixels.
// Complexity: O(area of r) time and memory.
func (im *Image) SubImage(r Rect) (*Image, error) {
	if r.Empty() {
		return nil, ErrEmptyImage
	}
	if r.X0 < 0 || r.Y0 < 0 || r.X1 > im.width || r.Y1 > im.height {
		return nil, ErrBounds
	}
	sub := &Image{
		height: r.Height(),
		width:  r.Width(),
		pix:    make([]uint8, r.Height()*r.Width()*Channels),
	}
	rowLen := r.Width() * Channels
	for y := r.Y0; y < r.Y1; y++ {
		src := im.offset(y, r.X0)
		dst := (y - r.Y0) * rowLen
		copy(sub.pix[dst:dst+rowLen], im.pix[src:src+rowLen])
	}

	return sub, nil
}

// HStack concatenates a and b along the width axis (b to the right of a).
// Both images must share the same height; returns ErrStackShape otherwise.
// Complexity: O(W×H) of the result.
func HStack(a, b *Image) (*Image, error) {
	if a.height != b.height {
		return nil, ErrStackShape
	}
	out := &Image{
		height: a.height,
		width:  a.width + b.width,
		pix:    make([]uint8, a.height*(a.width+b.width)*Channels),
	}
	aRow := a.width * Channels
	bRow := b.width * Channels
	for y := 0; y < a.height; y++ {
		dst := y * (aRow + bRow)
		copy(out.pix[dst:dst+aRow], a.pix[y*aRow:(y+1)*aRow])
		copy(out.pix[dst+aRow:dst+aRow+bRow], b.pix[y*bRow:(y+1)*bRow])
	}

	return out, nil
}

// VStack concatenates a and b along the height axis (b below a).
// Both images must share the same width; returns ErrStackShape otherwise.
// Complexity: O(W×H) of the result.
func VStack(a, b *Image) (*Image, error) {
	if a.width != b.width {
		return nil, ErrStackShape
	}
	out := &Image{
		height: a.height + b.height,
		width:  a.width,
		pix:    make([]uint8, (a.height+b.height)*a.width*Channels),
	}
	copy(out.pix, a.pix)
	copy(out.pix[len(a.pix):], b.pix)

	return out, nil
}
