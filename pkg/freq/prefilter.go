package freq

import (
	"math"
	"math/cmplx"
)

// Prefilter is the C3 front end: a complex baseband mixer, a
// Kaiser-windowed sinc FIR lowpass, and an FM phase-difference
// demodulator, cascaded sample-by-sample. It is an alternative to the
// Goertzel sweep for noisy or frequency-drifting signals (e.g.
// Doppler-shifted satellite passes).
//
// The phase-difference step — multiply the current filtered sample by
// the conjugate of the previous one and take its phase — is grounded on
// the FM demodulator in the pack's hztools-style demodulator
// (cmplx.Phase(phasor * cmplx.Conj(lastPhasor))); it is equivalent to
// spec.md's wrap(phi_n - phi_{n-1}) but avoids handling the wrap
// boundary by hand, since cmplx.Phase already returns a value in
// (-pi,pi].
type Prefilter struct {
	sampleRate float64
	centerHz   float64
	bandwidth  float64

	taps    []float64
	ring    []complex128
	ringPos int
	n       int

	prev     complex128
	havePrev bool
}

// NewPrefilter builds a prefilter mixing down from centerHz with a
// complex lowpass of half-bandwidth bandwidthHz/2, Kaiser-windowed at
// shape parameter beta, duration approximately 2ms.
func NewPrefilter(sampleRate, centerHz, bandwidthHz, beta float64) *Prefilter {
	taps := designLowpass(sampleRate, bandwidthHz/2, beta)
	return &Prefilter{
		sampleRate: sampleRate,
		centerHz:   centerHz,
		bandwidth:  bandwidthHz,
		taps:       taps,
		ring:       make([]complex128, len(taps)),
	}
}

// designLowpass builds an odd-length, DC-gain-normalised Kaiser-windowed
// sinc lowpass FIR of duration approximately 2ms with cutoff cutoffHz.
func designLowpass(sampleRate, cutoffHz, beta float64) []float64 {
	n := int(0.002 * sampleRate)
	if n%2 == 0 {
		n++
	}
	if n < 3 {
		n = 3
	}
	mid := (n - 1) / 2
	fcNorm := cutoffHz / sampleRate

	taps := make([]float64, n)
	for i := range taps {
		x := float64(i - mid)
		if x == 0 {
			taps[i] = 1
		} else {
			u := fcNorm * x
			taps[i] = math.Sin(math.Pi*u) / (math.Pi * u)
		}
	}

	besselI0 := func(x float64) float64 {
		sum, term := 1.0, 1.0
		for k := 1.0; k < 50; k++ {
			term *= (x / (2 * k)) * (x / (2 * k))
			sum += term
		}
		return sum
	}
	for i := range taps {
		r := float64(i-mid) / float64(mid)
		taps[i] *= besselI0(beta*math.Sqrt(1-r*r)) / besselI0(beta)
	}

	sum := 0.0
	for _, t := range taps {
		sum += t
	}
	if sum != 0 {
		for i := range taps {
			taps[i] /= sum
		}
	}
	return taps
}

// Process pushes one real sample through the mixer, filter and
// phase-difference demodulator, returning the demodulated value in
// [-1,+1]. The first call of a fresh Prefilter returns 0 (no previous
// phase to difference against yet).
func (p *Prefilter) Process(sample float64) float64 {
	osc := cmplx.Exp(complex(0, -2*math.Pi*p.centerHz*float64(p.n)/p.sampleRate))
	p.n++

	mixed := complex(sample, 0) * osc
	filtered := p.filterSample(mixed)

	var y float64
	if p.havePrev {
		diff := cmplx.Phase(filtered * cmplx.Conj(p.prev))
		scale := p.sampleRate / (math.Pi * p.bandwidth)
		y = scale * diff
		if y > 1 {
			y = 1
		} else if y < -1 {
			y = -1
		}
	}
	p.prev = filtered
	p.havePrev = true
	return y
}

func (p *Prefilter) filterSample(x complex128) complex128 {
	p.ring[p.ringPos] = x

	var acc complex128
	idx := p.ringPos
	for _, t := range p.taps {
		acc += complex(t, 0) * p.ring[idx]
		idx--
		if idx < 0 {
			idx = len(p.ring) - 1
		}
	}

	p.ringPos++
	if p.ringPos >= len(p.ring) {
		p.ringPos = 0
	}
	return acc
}

// Taps exposes the designed FIR coefficients, mainly for tests asserting
// the DC-gain and rejection properties spec.md requires.
func (p *Prefilter) Taps() []float64 {
	return p.taps
}
