package core_test

import (
	"errors"
	"testing"

	"github.com/torvik/augmenta/core"
)

// mustImage builds an image from a buffer or fails the test.
func mustImage(t *testing.T, h, w int, buf []uint8) *core.Image {
	t.Helper()
	im, err := core.FromBuffer(h, w, buf)
	if err != nil {
		t.Fatalf("FromBuffer(%d,%d) error: %v", h, w, err)
	}

	return im
}

// TestClone_Independent verifies deep-copy semantics of Clone.
func TestClone_Independent(t *testing.T) {
	im := mustImage(t, 1, 2, []uint8{1, 2, 3, 4, 5, 6})
	cl := im.Clone()
	cl.Set(0, 0, core.Pixel{R: 99})
	if im.At(0, 0).R != 1 {
		t.Errorf("original mutated through clone: At(0,0).R = %d; want 1", im.At(0, 0).R)
	}
}

// TestFillRect_ClipsAndFillsBlack checks that FillRect clips to the frame
// and that the patch is a constant block.
func TestFillRect_ClipsAndFillsBlack(t *testing.T) {
	im, err := core.New(4, 4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	im.Fill(core.Pixel{R: 200, G: 200, B: 200})
	// Patch extends past the right and bottom edges on purpose.
	im.FillRect(core.Rect{X0: 2, Y0: 2, X1: 10, Y1: 10}, core.Black)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inPatch := x >= 2 && y >= 2
			got := im.At(y, x)
			if inPatch && got != core.Black {
				t.Errorf("At(%d,%d) = %v inside patch; want Black", y, x, got)
			}
			if !inPatch && got == core.Black {
				t.Errorf("At(%d,%d) = Black outside patch", y, x)
			}
		}
	}
}

// TestSubImage verifies region extraction and bounds validation.
func TestSubImage(t *testing.T) {
	im := mustImage(t, 2, 2, []uint8{
		1, 1, 1, 2, 2, 2,
		3, 3, 3, 4, 4, 4,
	})

	sub, err := im.SubImage(core.Rect{X0: 1, Y0: 0, X1: 2, Y1: 2})
	if err != nil {
		t.Fatalf("SubImage error: %v", err)
	}
	if sub.Height() != 2 || sub.Width() != 1 {
		t.Fatalf("sub dimensions = (%d,%d); want (2,1)", sub.Height(), sub.Width())
	}
	if sub.At(0, 0).R != 2 || sub.At(1, 0).R != 4 {
		t.Errorf("sub samples = %v,%v; want R=2,R=4", sub.At(0, 0), sub.At(1, 0))
	}

	if _, err = im.SubImage(core.Rect{X0: 0, Y0: 0, X1: 3, Y1: 1}); !errors.Is(err, core.ErrBounds) {
		t.Errorf("out-of-frame SubImage error = %v; want ErrBounds", err)
	}
	if _, err = im.SubImage(core.Rect{X0: 1, Y0: 1, X1: 1, Y1: 1}); !errors.Is(err, core.ErrEmptyImage) {
		t.Errorf("empty SubImage error = %v; want ErrEmptyImage", err)
	}
}

// TestStacks verifies HStack/VStack layout and shape validation.
func TestStacks(t *testing.T) {
	a := mustImage(t, 1, 1, []uint8{1, 1, 1})
	b := mustImage(t, 1, 1, []uint8{2, 2, 2})
	tall := mustImage(t, 2, 1, []uint8{9, 9, 9, 9, 9, 9})

	h, err := core.HStack(a, b)
	if err != nil {
		t.Fatalf("HStack error: %v", err)
	}
	if h.Width() != 2 || h.At(0, 1).R != 2 {
		t.Errorf("HStack layout wrong: width=%d At(0,1)=%v", h.Width(), h.At(0, 1))
	}

	v, err := core.VStack(a, b)
	if err != nil {
		t.Fatalf("VStack error: %v", err)
	}
	if v.Height() != 2 || v.At(1, 0).R != 2 {
		t.Errorf("VStack layout wrong: height=%d At(1,0)=%v", v.Height(), v.At(1, 0))
	}

	if _, err = core.HStack(a, tall); !errors.Is(err, core.ErrStackShape) {
		t.Errorf("HStack mismatched heights error = %v; want ErrStackShape", err)
	}
	if _, err = core.VStack(tall, h); !errors.Is(err, core.ErrStackShape) {
		t.Errorf("VStack mismatched widths error = %v; want ErrStackShape", err)
	}
}
