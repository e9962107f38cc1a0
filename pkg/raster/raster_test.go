package raster

import "testing"

func TestSetAtRoundTrip(t *testing.T) {
	r := New(4, 4)
	r.Set(1, 2, 10, 20, 30)
	rr, gg, bb := r.At(1, 2)
	if rr != 10 || gg != 20 || bb != 30 {
		t.Errorf("At(1,2) = (%d,%d,%d), want (10,20,30)", rr, gg, bb)
	}
}

func TestOutOfBoundsIsBlack(t *testing.T) {
	r := New(2, 2)
	rr, gg, bb := r.At(5, 5)
	if rr != 0 || gg != 0 || bb != 0 {
		t.Errorf("out-of-bounds At = (%d,%d,%d), want black", rr, gg, bb)
	}
}

func TestImageAlphaAlwaysOpaque(t *testing.T) {
	r := New(3, 3)
	r.Set(0, 0, 200, 0, 0)
	img := r.Image()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a != 0xFFFF {
				t.Fatalf("pixel (%d,%d) alpha = %#x, want fully opaque", x, y, a)
			}
		}
	}
}

func TestResizeProducesRequestedDimensions(t *testing.T) {
	src := New(10, 10).Image()
	resized := Resize(src, 320, 240)
	w, h := resized.Bounds()
	if w != 320 || h != 240 {
		t.Errorf("Resize dims = (%d,%d), want (320,240)", w, h)
	}
}
