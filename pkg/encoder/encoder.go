// Package encoder implements C7, the encoder pipeline: raster -> VIS +
// line-structured tone train. It owns the encoder's phase accumulator
// (via pkg/tone) and its output sample buffer; per spec.md §5, an
// Encoder instance is not reentrant and carries no shared mutable state
// with any other instance.
//
// The overall shape — build the emission in one linear pass, channel by
// channel — follows the teacher's EncodeMessage pipeline
// (build-then-render in one pass); the per-format channel timing table
// is adapted from the pack's SSTV channel-timing calculator, read in the
// opposite direction (encode order rather than demod order).
package encoder

import (
	"github.com/kb9qz/gosstv/pkg/colorspace"
	"github.com/kb9qz/gosstv/pkg/mode"
	"github.com/kb9qz/gosstv/pkg/raster"
	"github.com/kb9qz/gosstv/pkg/sstverrors"
	"github.com/kb9qz/gosstv/pkg/tone"
	"github.com/kb9qz/gosstv/pkg/vis"
)

// Encoder renders a raster into a PCM sample stream for one mode. It
// owns its own tone generator and is not safe for concurrent use.
type Encoder struct {
	mode *mode.Spec
	gen  *tone.Generator
}

// New builds an Encoder for modeName ("ROBOT36", "MARTIN1", "SCOTTIE1")
// running at sampleRate. An unknown mode name is spec.md's one hard
// encode-time failure.
func New(modeName string, sampleRate float64) (*Encoder, error) {
	if sampleRate <= 0 {
		return nil, &sstverrors.InvalidSampleRate{Rate: sampleRate}
	}
	m, ok := mode.LookupByName(modeName)
	if !ok {
		return nil, &sstverrors.InvalidMode{Name: modeName}
	}
	return &Encoder{mode: m, gen: tone.NewGenerator(sampleRate)}, nil
}

// Encode resizes img to the mode's (width, lines) and renders the VIS
// preamble followed by every scan line's tone train.
func (e *Encoder) Encode(img *raster.Raster) []float64 {
	resized := raster.Resize(img.Image(), e.mode.Width, e.mode.Lines)

	var out []float64
	out = append(out, vis.Emit(e.gen, e.mode)...)

	for y := 0; y < e.mode.Lines; y++ {
		if e.mode.Format == mode.YUV {
			out = append(out, e.encodeRobotLine(resized, y)...)
		} else {
			out = append(out, e.encodeRGBLine(resized, y)...)
		}
	}
	return out
}

// rgbChannelOrder is the G, B, R scan order spec.md §4.7 specifies for
// Martin/Scottie.
var rgbChannelOrder = [3]int{1, 2, 0}

func (e *Encoder) encodeRGBLine(img *raster.Raster, y int) []float64 {
	m := e.mode
	var out []float64
	out = append(out, e.gen.Emit(mode.FreqSync, m.SyncPulse)...)
	out = append(out, e.gen.Emit(mode.FreqBlack, m.SyncPorch)...)

	dwell := m.ScanTime / float64(m.Width)
	for ci, chIdx := range rgbChannelOrder {
		for x := 0; x < m.Width; x++ {
			r, g, b := img.At(x, y)
			var v uint8
			switch chIdx {
			case 0:
				v = r
			case 1:
				v = g
			case 2:
				v = b
			}
			f := mode.FreqBlack + (float64(v)/255.0)*800.0
			out = append(out, e.gen.Emit(f, dwell)...)
		}
		if ci < len(rgbChannelOrder)-1 && m.SeparatorPulse > 0 {
			out = append(out, e.gen.Emit(mode.FreqSync, m.SeparatorPulse)...)
		}
	}
	return out
}

// encodeRobotLine renders one Robot 36 line: sync, porch, a full-width Y
// scan, a parity-informational separator, a chroma porch, then a
// half-resolution chroma scan.
//
// Per spec.md §9's resolution of the separator-frequency open question,
// the separator's *frequency* still alternates per line as documented
// informational signalling (1500 Hz / 2300 Hz), but the *chroma value
// actually transmitted* follows the same line-parity rule the decoder
// uses as ground truth (even->Cr/V, odd->Cb/U) so this codec's own
// encode->decode round trip is colour-correct regardless of what an
// external decoder infers from the separator tone.
func (e *Encoder) encodeRobotLine(img *raster.Raster, y int) []float64 {
	m := e.mode
	var out []float64
	out = append(out, e.gen.Emit(mode.FreqSync, m.SyncPulse)...)
	out = append(out, e.gen.Emit(mode.FreqBlack, m.SyncPorch)...)

	yDwell := m.YScanTime / float64(m.Width)
	for x := 0; x < m.Width; x++ {
		r, g, b := img.At(x, y)
		yc := colorspace.RGBToYCbCr(r, g, b)
		f := mode.FreqBlack + ((yc.Y-16)/219.0)*800.0
		out = append(out, e.gen.Emit(f, yDwell)...)
	}

	even := y%2 == 0
	sepFreq := mode.FreqBlack
	if !even {
		sepFreq = mode.FreqWhite
	}
	out = append(out, e.gen.Emit(sepFreq, m.ChromaSeparatorTime)...)
	out = append(out, e.gen.Emit(mode.FreqBlack, m.ChromaPorchTime)...)

	halfW := m.Width / 2
	cDwell := m.ChromaScanTime / float64(halfW)
	for cx := 0; cx < halfW; cx++ {
		x0, x1 := cx*2, cx*2+1
		r0, g0, b0 := img.At(x0, y)
		r1, g1, b1 := img.At(x1, y)
		c0 := colorspace.RGBToYCbCr(r0, g0, b0)
		c1 := colorspace.RGBToYCbCr(r1, g1, b1)

		var avg float64
		if even {
			avg = (c0.Cr + c1.Cr) / 2
		} else {
			avg = (c0.Cb + c1.Cb) / 2
		}
		f := mode.FreqBlack + ((avg-16)/224.0)*800.0
		out = append(out, e.gen.Emit(f, cDwell)...)
	}
	return out
}

// SampleRate returns the encoder's configured output rate.
func (e *Encoder) SampleRate() float64 {
	return e.gen.SampleRate()
}

// Mode returns the mode this encoder renders.
func (e *Encoder) Mode() *mode.Spec {
	return e.mode
}
