package chip8

import (
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// FramebufferRGBA renders the display into a 64x32 RGBA8888 byte slice
// (length 64*32*4), white for set pixels and black otherwise.
func (m *Machine) FramebufferRGBA() []byte {
	pixels := make([]byte, DisplayWidth*DisplayHeight*4)
	for i := 0; i < DisplayWidth*DisplayHeight; i++ {
		var v byte
		if m.Display.pixels[i] != 0 {
			v = 0xFF
		}
		pixels[i*4+0] = v
		pixels[i*4+1] = v
		pixels[i*4+2] = v
		pixels[i*4+3] = 0xFF
	}
	return pixels
}

// FramebufferImage returns the display as a 64x32 *image.RGBA.
func (m *Machine) FramebufferImage() *image.RGBA {
	return &image.RGBA{
		Pix:    m.FramebufferRGBA(),
		Stride: DisplayWidth * 4,
		Rect:   image.Rect(0, 0, DisplayWidth, DisplayHeight),
	}
}

// SaveScreenshot encodes the display as a PNG scaled by the given per-pixel
// factor and writes it to filename.
func (m *Machine) SaveScreenshot(filename string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := m.FramebufferImage()
	dst := image.NewRGBA(image.Rect(0, 0, DisplayWidth*scale, DisplayHeight*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
