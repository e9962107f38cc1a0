// Package freq implements the two frequency-estimation front ends the
// decoder can run: a Goertzel coarse/fine sweep (goertzel.go) and a
// Kaiser-windowed complex FM phase-difference demodulator (prefilter.go).
// Both satisfy the same windowed estimate_frequency(samples, sampleRate)
// -> Hz contract so the decoder can swap between them per spec.md's
// design note on tagged front-end variants.
//
// The Goertzel recurrence below is grounded on the hand-rolled Goertzel
// filter in the pack's ham-radio signal-processing extensions
// (coefficient 2*cos(omega), the s0 = sample + coeff*s1 - s2 recurrence);
// the non-integer bin convention k = N*f/Fs follows spec.md's exact
// formula rather than that file's +0.5 bin-centering offset.
package freq

import "math"

// GoertzelMagnitude returns |X(targetHz)|/N for samples, using the
// recursive single-bin DFT with non-integer bin index k = N*targetHz/Fs.
func GoertzelMagnitude(samples []float64, targetHz, sampleRate float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	k := float64(n) * targetHz / sampleRate
	omega := 2 * math.Pi * k / float64(n)
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64
	for _, sample := range samples {
		s0 = sample + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	real := s1 - s2*math.Cos(omega)
	imag := s2 * math.Sin(omega)
	return math.Sqrt(real*real+imag*imag) / float64(n)
}

// Coarse/fine sweep bounds for EstimateFrequency, per spec.md's §4.2.
const (
	coarseLowHz  = 1100.0
	coarseHighHz = 2500.0
	coarseStepHz = 25.0
	fineRadiusHz = 30.0
	fineStepHz   = 1.0
)

// EstimateFrequency performs the two-stage Goertzel sweep: a 25 Hz-step
// coarse pass over [1100,2500] Hz, then a 1 Hz-step fine pass within +-30
// Hz of the coarse winner. Returns the argmax frequency.
func EstimateFrequency(samples []float64, sampleRate float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	bestFreq, bestMag := coarseLowHz, -1.0
	for f := coarseLowHz; f <= coarseHighHz; f += coarseStepHz {
		if m := GoertzelMagnitude(samples, f, sampleRate); m > bestMag {
			bestMag, bestFreq = m, f
		}
	}

	fineBest, fineMag := bestFreq, -1.0
	lo, hi := bestFreq-fineRadiusHz, bestFreq+fineRadiusHz
	for f := lo; f <= hi; f += fineStepHz {
		if m := GoertzelMagnitude(samples, f, sampleRate); m > fineMag {
			fineMag, fineBest = m, f
		}
	}
	return fineBest
}
