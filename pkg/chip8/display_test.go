package chip8

import "testing"

func TestSetPixelToggle(t *testing.T) {
	var d Display

	if erased := d.SetPixel(10, 5); erased {
		t.Errorf("first set: expected no erase")
	}
	if d.Pixel(10, 5) != 1 {
		t.Errorf("pixel not set")
	}

	// SetPixel is its own inverse: the second call erases and reports it.
	if erased := d.SetPixel(10, 5); !erased {
		t.Errorf("second set: expected erase")
	}
	if d.Pixel(10, 5) != 0 {
		t.Errorf("pixel not restored")
	}
}

func TestSetPixelWraparound(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		wantX int
		wantY int
	}{
		{"x at width", 64, 10, 0, 10},
		{"x negative", -1, 10, 63, 10},
		{"y at height", 5, 32, 5, 0},
		{"y negative", 5, -1, 5, 31},
		{"both wrap", 64, 32, 0, 0},
		{"in range", 63, 31, 63, 31},
	}

	for _, tc := range tests {
		var d Display
		d.SetPixel(tc.x, tc.y)
		if d.Pixel(tc.wantX, tc.wantY) != 1 {
			t.Errorf("%s: SetPixel(%d,%d) did not land on (%d,%d)", tc.name, tc.x, tc.y, tc.wantX, tc.wantY)
		}
	}
}

func TestSetPixelFarOutOfRange(t *testing.T) {
	// The one-sided wrap corrects at most one bound-width; coordinates
	// further out are absorbed without storing anything.
	coords := [][2]int{
		{128, 10}, // two widths out
		{129, 10},
		{-65, 10},
		{10, 64}, // two heights out
		{10, 70},
		{10, -33},
		{200, 200},
	}

	for _, c := range coords {
		var d Display
		if erased := d.SetPixel(c[0], c[1]); erased {
			t.Errorf("SetPixel(%d,%d): expected no erase report", c[0], c[1])
		}
		for i := range d.pixels {
			if d.pixels[i] != 0 {
				x, y := i%DisplayWidth, i/DisplayWidth
				t.Fatalf("SetPixel(%d,%d) stored a pixel at (%d,%d)", c[0], c[1], x, y)
			}
		}
	}
}

func TestSetPixelWrapEquivalence(t *testing.T) {
	var a, b Display
	a.SetPixel(64, 10)
	b.SetPixel(0, 10)
	for i := range a.pixels {
		if a.pixels[i] != b.pixels[i] {
			t.Fatalf("SetPixel(64,10) differs from SetPixel(0,10) at index %d", i)
		}
	}
}

func TestClear(t *testing.T) {
	var d Display
	d.SetPixel(0, 0)
	d.SetPixel(63, 31)
	d.Clear()
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if d.Pixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) not cleared", x, y)
			}
		}
	}
}
