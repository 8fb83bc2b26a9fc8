package chip8

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gochip8/pkg/grid"
)

func TestFramebufferRGBA(t *testing.T) {
	m := NewMachine()
	m.Display.SetPixel(0, 0)
	m.Display.SetPixel(63, 31)

	pix := m.FramebufferRGBA()
	if len(pix) != DisplayWidth*DisplayHeight*4 {
		t.Fatalf("length: expected %d, got %d", DisplayWidth*DisplayHeight*4, len(pix))
	}

	checkPixel := func(x, y int, want byte) {
		i := grid.Index(x, y, DisplayWidth) * 4
		if pix[i] != want || pix[i+1] != want || pix[i+2] != want {
			t.Errorf("pixel (%d,%d): expected 0x%02X, got % X", x, y, want, pix[i:i+3])
		}
		if pix[i+3] != 0xFF {
			t.Errorf("pixel (%d,%d): alpha must be opaque", x, y)
		}
	}
	checkPixel(0, 0, 0xFF)
	checkPixel(63, 31, 0xFF)
	checkPixel(1, 0, 0x00)
}

func TestSaveScreenshot(t *testing.T) {
	m := NewMachine()
	m.Display.SetPixel(10, 10)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := m.SaveScreenshot(path, 4); err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != DisplayWidth*4 || bounds.Dy() != DisplayHeight*4 {
		t.Errorf("size: expected %dx%d, got %dx%d", DisplayWidth*4, DisplayHeight*4, bounds.Dx(), bounds.Dy())
	}

	r, _, _, _ := img.At(10*4, 10*4).RGBA()
	if r == 0 {
		t.Errorf("set pixel must be white in the screenshot")
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r != 0 {
		t.Errorf("unset pixel must be black in the screenshot")
	}
}
