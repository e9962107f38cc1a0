package decoder

import (
	"math"

	"github.com/kb9qz/gosstv/pkg/colorspace"
	"github.com/kb9qz/gosstv/pkg/freq"
	"github.com/kb9qz/gosstv/pkg/mode"
	"github.com/kb9qz/gosstv/pkg/raster"
	"github.com/kb9qz/gosstv/pkg/sstverrors"
	"github.com/kb9qz/gosstv/pkg/verbose"
	"github.com/kb9qz/gosstv/pkg/vis"
)

// widenPixels widens a per-pixel Goertzel window to several pixels'
// worth of samples, per spec.md §4.2's explicit trade-off: a single
// pixel's dwell is too short for an unbiased estimate.
const widenPixels = 6.0

// chromaWindowFraction is the width of a chroma sample's estimation
// window, as a fraction of its dwell, per spec.md §4.9c.
const chromaWindowFraction = 0.98

// Option configures a Decoder.
type Option func(*Decoder)

// WithForcedMode skips VIS detection and decodes as m unconditionally.
func WithForcedMode(m *mode.Spec) Option {
	return func(d *Decoder) { d.forcedMode = m }
}

// WithFMDemod selects the FM phase-difference front end instead of the
// default Goertzel sweep, per spec.md §6's use_fm_demod configuration
// flag (default false: Goertzel preferred on clean signals).
func WithFMDemod(enabled bool) Option {
	return func(d *Decoder) { d.useFM = enabled }
}

// Decoder recovers a raster from a PCM sample stream. It owns its own
// raster and chroma scratch buffers; per spec.md §5, an instance is not
// reentrant.
type Decoder struct {
	sampleRate float64
	forcedMode *mode.Spec
	useFM      bool
}

// New builds a Decoder reading samples at sampleRate.
func New(sampleRate float64, opts ...Option) *Decoder {
	d := &Decoder{sampleRate: sampleRate}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Result is the outcome of a Decode call: the best-effort raster, the
// mode it was decoded as, and any non-fatal warnings collected along the
// way (spec.md §7's recovered content errors).
type Result struct {
	Image    *raster.Raster
	Mode     *mode.Spec
	Warnings []error
}

// Decode recovers a raster from samples. It never aborts on a recovered
// content error (UnrecognisedVIS, TruncatedInput): those are collected
// in Result.Warnings and also returned as err so a caller that only
// checks err still sees them, while still receiving the best-effort
// Result. NoSync and InvalidSampleRate are structural and return a nil
// Result.
func (d *Decoder) Decode(samples []float64) (*Result, error) {
	if d.sampleRate <= 0 {
		return nil, &sstverrors.InvalidSampleRate{Rate: d.sampleRate}
	}

	var warnings []error
	m := d.forcedMode
	if m == nil {
		detected, ok := vis.Detect(samples, d.sampleRate)
		m = detected
		if !ok {
			warnings = append(warnings, &sstverrors.UnrecognisedVIS{})
		}
	}

	img := raster.New(m.Width, m.Lines)
	var chromaU, chromaV []float64
	if m.Format == mode.YUV {
		chromaU = make([]float64, m.Width*m.Lines)
		chromaV = make([]float64, m.Width*m.Lines)
		for i := range chromaU {
			chromaU[i] = 128
			chromaV[i] = 128
		}
	}

	tracker := NewSyncTracker(m, d.sampleRate)
	cursor, ok := tracker.AcquireInitial(samples)
	if !ok {
		return nil, &sstverrors.NoSync{Reason: "no 1200 Hz pulse found in initial search window"}
	}

	est := d.estimator()
	lineDuration := LineDuration(m)
	linesDecoded := 0

	for y := 0; y < m.Lines; y++ {
		if cursor >= len(samples) {
			warnings = append(warnings, &sstverrors.TruncatedInput{LinesDecoded: linesDecoded, LinesWanted: m.Lines})
			break
		}
		verbose.SyncLine(y, cursor)

		dataStart := cursor + int(m.SyncPulse*d.sampleRate) + int(m.SyncPorch*d.sampleRate)
		var next int
		if m.Format == mode.YUV {
			next = d.decodeRobotLine(samples, dataStart, m, img, chromaU, chromaV, y, est)
		} else {
			next = d.decodeRGBLine(samples, dataStart, m, img, y, est)
		}
		cursor = next
		linesDecoded++

		if y < m.Lines-1 {
			cursor = tracker.AcquireNext(samples, cursor, lineDuration)
		}
	}

	if m.Format == mode.YUV {
		reassembleYUV(img, chromaU, chromaV, m)
	}

	var err error
	if len(warnings) > 0 {
		err = warnings[0]
	}
	return &Result{Image: img, Mode: m, Warnings: warnings}, err
}

func (d *Decoder) estimator() *freq.Estimator {
	kind := freq.Goertzel
	if d.useFM {
		kind = freq.FM
	}
	return freq.NewEstimator(kind, d.sampleRate)
}

var rgbChannelOrder = [3]int{1, 2, 0} // G, B, R — matches encoder.rgbChannelOrder

func (d *Decoder) decodeRGBLine(samples []float64, cursor int, m *mode.Spec, img *raster.Raster, y int, est *freq.Estimator) int {
	dwell := m.ScanTime / float64(m.Width)
	samplesPerPixel := dwell * d.sampleRate
	windowLen := int(samplesPerPixel * widenPixels)

	for ci, chIdx := range rgbChannelOrder {
		for x := 0; x < m.Width; x++ {
			start := cursor + int(float64(x)*samplesPerPixel)
			f := est.Estimate(samples, start, windowLen)
			v := clampChannel(math.Round(255 * (f - mode.FreqBlack) / 800))

			r, g, b := img.At(x, y)
			switch chIdx {
			case 0:
				r = v
			case 1:
				g = v
			case 2:
				b = v
			}
			img.Set(x, y, r, g, b)
		}
		cursor += int(m.ScanTime * d.sampleRate)
		if ci < len(rgbChannelOrder)-1 {
			cursor += int(m.SeparatorPulse * d.sampleRate)
		}
	}
	return cursor
}

func (d *Decoder) decodeRobotLine(samples []float64, cursor int, m *mode.Spec, img *raster.Raster, chromaU, chromaV []float64, y int, est *freq.Estimator) int {
	yDwell := m.YScanTime / float64(m.Width)
	samplesPerPixel := yDwell * d.sampleRate
	windowLen := int(samplesPerPixel * widenPixels)

	for x := 0; x < m.Width; x++ {
		start := cursor + int(float64(x)*samplesPerPixel)
		f := est.Estimate(samples, start, windowLen)
		yVal := 16 + 219*(f-mode.FreqBlack)/800
		v := clampChannel(yVal)
		img.Set(x, y, v, v, v)
	}
	cursor += int(m.YScanTime * d.sampleRate)
	cursor += int(m.ChromaSeparatorTime * d.sampleRate)
	cursor += int(m.ChromaPorchTime * d.sampleRate)

	halfW := m.Width / 2
	chromaDwell := m.ChromaScanTime / float64(halfW)
	samplesPerChromaPixel := chromaDwell * d.sampleRate
	windowLenC := int(samplesPerChromaPixel * chromaWindowFraction)

	even := y%2 == 0
	for cx := 0; cx < halfW; cx++ {
		center := cursor + int((float64(cx)+0.5)*samplesPerChromaPixel)
		start := center - windowLenC/2

		f := est.Estimate(samples, start, windowLenC)
		cv := clampRange(16+224*(f-mode.FreqBlack)/800, 16, 240)

		x0, x1 := cx*2, cx*2+1
		dst := chromaU
		if even {
			dst = chromaV
		}
		dst[y*m.Width+x0] = cv
		if x1 < m.Width {
			dst[y*m.Width+x1] = cv
		}
	}
	cursor += int(m.ChromaScanTime * d.sampleRate)
	return cursor
}

// reassembleYUV implements spec.md §4.9's "YUV reassembly" step: lines
// are processed in pairs; within a pair the even line's scratch supplies
// Cr for both lines and the odd line's scratch supplies Cb, because
// Robot 36 interleaves chroma across line pairs.
func reassembleYUV(img *raster.Raster, chromaU, chromaV []float64, m *mode.Spec) {
	w := m.Width
	for pairStart := 0; pairStart < m.Lines; pairStart += 2 {
		evenY := pairStart
		oddY := pairStart + 1

		ys := []int{evenY}
		if oddY < m.Lines {
			ys = append(ys, oddY)
		}

		for x := 0; x < w; x++ {
			cr := chromaV[evenY*w+x]
			cb := 128.0
			if oddY < m.Lines {
				cb = chromaU[oddY*w+x]
			} else {
				cb = chromaU[evenY*w+x]
			}

			for _, y := range ys {
				r, _, _ := img.At(x, y) // Y was stored into R=G=B during decode
				rr, gg, bb := colorspace.YCbCrToRGB(float64(r), cb, cr)
				img.Set(x, y, rr, gg, bb)
			}
		}
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
