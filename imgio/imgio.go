// Package imgio converts between raster files and the image-notation
// core.Image. Decoding funnels every source through one RGB conversion so
// channel order is fixed at the boundary of the module.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/torvik/augmenta/core"
)

// ErrUnsupportedFormat indicates a file extension outside .png/.jpg/.jpeg.
var ErrUnsupportedFormat = errors.New("imgio: unsupported image format")

// DefaultJPEGQuality is the encoder quality used by Write for JPEG targets.
const DefaultJPEGQuality = 95

// Decode reads a PNG or JPEG stream into a core.Image in image notation.
// Complexity: O(W×H) time and memory.
func Decode(r io.Reader) (*core.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imgio: decode: %w", err)
	}

	return fromStdlib(src)
}

// Read opens and decodes the image file at path.
func Read(path string) (*core.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: open %q: %w", path, err)
	}
	defer f.Close()

	im, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imgio: read %q: %w", path, err)
	}

	return im, nil
}

// ReadMatrix converts a matrix-notation byte plane — (rows, columns) axis
// order, BGR channels — into an image-notation core.Image. It is the bridge
// for native readers that do not speak image notation.
func ReadMatrix(rows, cols int, buf []uint8) (*core.Image, error) {
	im, err := core.FromMatrix(rows, cols, buf)
	if err != nil {
		return nil, fmt.Errorf("imgio: matrix plane: %w", err)
	}

	return im, nil
}

// fromStdlib flattens any stdlib image into the contiguous RGB buffer.
func fromStdlib(src image.Image) (*core.Image, error) {
	bounds := src.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	if h == 0 || w == 0 {
		return nil, core.ErrEmptyImage
	}
	buf := make([]uint8, h*w*core.Channels)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			buf[i] = uint8(r >> 8)
			buf[i+1] = uint8(g >> 8)
			buf[i+2] = uint8(b >> 8)
			i += core.Channels
		}
	}

	return core.FromBuffer(h, w, buf)
}

// toStdlib expands the image into an *image.RGBA for the stdlib encoders.
func toStdlib(im *core.Image) *image.RGBA {
	h, w := im.Height(), im.Width()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	pix := im.Pix()
	src, dst := 0, 0
	for y := 0; y < h; y++ {
		dst = y * out.Stride
		for x := 0; x < w; x++ {
			out.Pix[dst] = pix[src]
			out.Pix[dst+1] = pix[src+1]
			out.Pix[dst+2] = pix[src+2]
			out.Pix[dst+3] = 0xff
			src += core.Channels
			dst += 4
		}
	}

	return out
}

// EncodePNG writes the image as PNG to w.
func EncodePNG(w io.Writer, im *core.Image) error {
	if err := png.Encode(w, toStdlib(im)); err != nil {
		return fmt.Errorf("imgio: encode png: %w", err)
	}

	return nil
}

// EncodeJPEG writes the image as JPEG to w with the given quality (1–100).
func EncodeJPEG(w io.Writer, im *core.Image, quality int) error {
	if err := jpeg.Encode(w, toStdlib(im), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("imgio: encode jpeg: %w", err)
	}

	return nil
}

// Write encodes the image to path, choosing the codec by extension.
// Returns ErrUnsupportedFormat for anything but .png/.jpg/.jpeg.
func Write(path string, im *core.Image) error {
	var enc func(io.Writer, *core.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = EncodePNG
	case ".jpg", ".jpeg":
		enc = func(w io.Writer, im *core.Image) error {
			return EncodeJPEG(w, im, DefaultJPEGQuality)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgio: create %q: %w", path, err)
	}
	if err = enc(f, im); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
