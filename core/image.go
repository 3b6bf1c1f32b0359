package core

// New constructs a black Image of the given dimensions in image notation.
// Returns ErrEmptyImage if h or w is not positive.
// Complexity: O(W×H) time and memory.
func New(h, w int) (*Image, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrEmptyImage
	}

	return &Image{
		height: h,
		width:  w,
		pix:    make([]uint8, h*w*Channels),
	}, nil
}

// FromBuffer constructs an Image from a buffer already in image notation
// (height, width, channel order RGB). The buffer is deep-copied to ensure
// immutability of the caller's data.
// Returns ErrEmptyImage on non-positive dimensions,
// ErrBufferSize if len(buf) != h*w*Channels.
// Complexity: O(W×H) time and memory.
func FromBuffer(h, w int, buf []uint8) (*Image, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrEmptyImage
	}
	if len(buf) != h*w*Channels {
		return nil, ErrBufferSize
	}
	pix := make([]uint8, len(buf))
	copy(pix, buf)

	return &Image{height: h, width: w, pix: pix}, nil
}

// FromMatrix converts a matrix-notation buffer into an Image.
//
// Matrix notation is (rows, columns) axis order with BGR channel order, as
// native readers produce it. The image-notation result is the transpose:
// the matrix sample at (row r, column c) becomes the image sample at
// (y=c, x=r), with the B and R channels swapped. The resulting image has
// height=cols and width=rows.
// Returns ErrEmptyImage on non-positive dimensions,
// ErrBufferSize if len(buf) != rows*cols*Channels.
// Complexity: O(W×H) time and memory.
func FromMatrix(rows, cols int, buf []uint8) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyImage
	}
	if len(buf) != rows*cols*Channels {
		return nil, ErrBufferSize
	}
	im := &Image{
		height: cols,
		width:  rows,
		pix:    make([]uint8, rows*cols*Channels),
	}
	var src, dst int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			src = (r*cols + c) * Channels
			dst = im.offset(c, r)
			// BGR → RGB
			im.pix[dst] = buf[src+2]
			im.pix[dst+1] = buf[src+1]
			im.pix[dst+2] = buf[src]
		}
	}

	return im, nil
}

// ToMatrix exports the image as a matrix-notation buffer: (rows, columns)
// axis order with BGR channels, rows=Width, cols=Height. It is the exact
// inverse of FromMatrix.
// Complexity: O(W×H) time and memory.
func (im *Image) ToMatrix() []uint8 {
	buf := make([]uint8, len(im.pix))
	var src, dst int
	for y := 0; y < im.height; y++ {
		for x := 0; x < im.width; x++ {
			src = im.offset(y, x)
			dst = (x*im.height + y) * Channels
			// RGB → BGR
			buf[dst] = im.pix[src+2]
			buf[dst+1] = im.pix[src+1]
			buf[dst+2] = im.pix[src]
		}
	}

	return buf
}
