// Package colorspace implements ITU-R BT.601 video-range colour
// conversion between RGB and YCbCr, the exact coefficients spec.md's
// colour-converter component requires. Encoder and decoder must use the
// same range (video, not full): mixing them produces a green cast on
// neutral greys, which the round-trip test in this package guards
// against.
package colorspace

import "math"

// YCbCr holds a BT.601 video-range triple: Y in [16,235], Cb/Cr in
// [16,240].
type YCbCr struct {
	Y, Cb, Cr float64
}

// RGBToYCbCr converts an 8-bit RGB triple to BT.601 video-range YCbCr.
func RGBToYCbCr(r, g, b uint8) YCbCr {
	R, G, B := float64(r), float64(g), float64(b)
	y := 16 + (65.738*R+129.057*G+25.064*B)/256
	cb := 128 + (-37.945*R-74.494*G+112.439*B)/256
	cr := 128 + (112.439*R-94.154*G-18.285*B)/256
	return YCbCr{
		Y:  clamp(y, 16, 235),
		Cb: clamp(cb, 16, 240),
		Cr: clamp(cr, 16, 240),
	}
}

// YCbCrToRGB converts BT.601 video-range Y, Cb, Cr components back to an
// 8-bit RGB triple, clamped to [0,255].
func YCbCrToRGB(y, cb, cr float64) (r, g, b uint8) {
	yT := 298.082 * (y - 16)
	rf := 0.003906 * (yT + 408.583*(cr-128))
	gf := 0.003906 * (yT - 100.291*(cb-128) - 208.120*(cr-128))
	bf := 0.003906 * (yT + 516.411*(cb-128))
	return clamp255(rf), clamp255(gf), clamp255(bf)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp255(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
