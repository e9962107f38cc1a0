package colorspace

import "testing"

func TestRoundTripVideoRange(t *testing.T) {
	for y := 16; y <= 235; y += 7 {
		for cb := 16; cb <= 240; cb += 28 {
			for cr := 16; cr <= 240; cr += 28 {
				r, g, b := YCbCrToRGB(float64(y), float64(cb), float64(cr))
				got := RGBToYCbCr(r, g, b)
				if diff := got.Y - float64(y); diff < -1 || diff > 1 {
					t.Errorf("Y round trip: in=%d out=%v", y, got.Y)
				}
				if diff := got.Cb - float64(cb); diff < -1 || diff > 1 {
					t.Errorf("Cb round trip: in=%d out=%v", cb, got.Cb)
				}
				if diff := got.Cr - float64(cr); diff < -1 || diff > 1 {
					t.Errorf("Cr round trip: in=%d out=%v", cr, got.Cr)
				}
			}
		}
	}
}

func TestNeutralGreyRoundTrip(t *testing.T) {
	for _, g := range []uint8{0, 64, 128, 192, 255} {
		yc := RGBToYCbCr(g, g, g)
		r, gg, b := YCbCrToRGB(yc.Y, yc.Cb, yc.Cr)
		if r != gg || gg != b {
			t.Errorf("grey(%d) round trip not neutral: got (%d,%d,%d)", g, r, gg, b)
		}
	}
}

func TestWhiteIsNearFullScale(t *testing.T) {
	r, g, b := YCbCrToRGB(235, 128, 128)
	for _, c := range []uint8{r, g, b} {
		if c < 250 {
			t.Errorf("channel = %d, want near 255 for Y=235 neutral chroma", c)
		}
	}
}

func TestBlackIsNearZero(t *testing.T) {
	r, g, b := YCbCrToRGB(16, 128, 128)
	for _, c := range []uint8{r, g, b} {
		if c > 5 {
			t.Errorf("channel = %d, want near 0 for Y=16 neutral chroma", c)
		}
	}
}
