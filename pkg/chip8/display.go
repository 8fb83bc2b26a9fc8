package chip8

import "gochip8/pkg/grid"

const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. Pixels are stored flat,
// row-major, one byte per pixel holding 0 or 1.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]byte
}

// SetPixel XORs the pixel at (x, y) and reports whether the pixel was erased
// (was 1, now 0), which signals a sprite collision to the caller.
//
// Coordinates wrap one-sidedly: a coordinate at or beyond the bound has the
// bound subtracted once, a negative coordinate has it added once. This is not
// a full modulo: a coordinate more than one bound-width out of range is still
// out of range after the wrap. Such a plot is absorbed as a phantom pixel:
// nothing is stored and no collision is reported.
func (d *Display) SetPixel(x, y int) bool {
	if x >= DisplayWidth {
		x -= DisplayWidth
	} else if x < 0 {
		x += DisplayWidth
	}
	if y >= DisplayHeight {
		y -= DisplayHeight
	} else if y < 0 {
		y += DisplayHeight
	}

	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}

	idx := grid.Index(x, y, DisplayWidth)
	d.pixels[idx] ^= 1
	return d.pixels[idx] == 0
}

// Pixel returns the value (0 or 1) at (x, y). Coordinates must be in range.
func (d *Display) Pixel(x, y int) byte {
	return d.pixels[grid.Index(x, y, DisplayWidth)]
}

// Clear resets every pixel to 0.
func (d *Display) Clear() {
	d.pixels = [DisplayWidth * DisplayHeight]byte{}
}
