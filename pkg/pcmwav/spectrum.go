package pcmwav

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrogram is a diagnostic helper, not part of the decode hot path
// (C2/C3 use the hand-rolled Goertzel sweep and Kaiser FIR, never FFT,
// per spec.md's exact contracts for those components). It chops samples
// into consecutive fftSize-sample frames and returns the magnitude
// spectrum (first fftSize/2 bins, in dB) of each. cmd/sstvdecode's
// -spectrum flag prints the peak bin frequency and level of each of the
// first frames, which cover the VIS leader region.
//
// Grounded on the teacher's DSP wrapper, which uses the same
// github.com/mjibson/go-dsp/fft for its own spectral peak search.
func Spectrogram(samples []float64, fftSize int) [][]float64 {
	if fftSize <= 0 {
		return nil
	}
	var rows [][]float64
	for start := 0; start+fftSize <= len(samples); start += fftSize {
		frame := make([]float64, fftSize)
		copy(frame, samples[start:start+fftSize])
		hann(frame)

		spectrum := fft.FFTReal(frame)
		mags := make([]float64, fftSize/2)
		for i := range mags {
			mag := cmplx.Abs(spectrum[i]) / float64(fftSize)
			if mag < 1e-12 {
				mag = 1e-12
			}
			mags[i] = 20 * math.Log10(mag)
		}
		rows = append(rows, mags)
	}
	return rows
}

func hann(frame []float64) {
	n := len(frame)
	for i := range frame {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		frame[i] *= w
	}
}

// BinHz returns the centre frequency of spectrum bin i for an FFT of
// size fftSize run at sampleRate.
func BinHz(i, fftSize int, sampleRate float64) float64 {
	return float64(i) * sampleRate / float64(fftSize)
}
