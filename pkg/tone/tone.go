// Package tone implements the SSTV codec's only legal source of encoder
// samples: a phase-continuous sine oscillator. Every emitted tone
// continues the running phase of the previous one, so there is never a
// discontinuity — and hence no spectral splatter — at a tone boundary.
//
// Generalised from the teacher's JS8 tone synthesis, which restarts
// omega*i at zero for every tone; SSTV's phase-continuity invariant
// forbids that, so the phase accumulator here is carried across calls
// instead.
package tone

import "math"

// Generator is a single phase-continuous oscillator. It is not safe for
// concurrent use; each Encoder owns exactly one.
type Generator struct {
	sampleRate float64
	phase      float64
}

// NewGenerator creates an oscillator running at sampleRate Hz, with phase
// reset to zero (stream start).
func NewGenerator(sampleRate float64) *Generator {
	return &Generator{sampleRate: sampleRate}
}

// Emit appends floor(durationS*sampleRate) samples of sin(phase) to a new
// slice, advancing the generator's running phase by 2*pi*freqHz/sampleRate
// per sample. Phase is taken modulo 2*pi after the last sample, never
// reset mid-stream.
func (g *Generator) Emit(freqHz, durationS float64) []float64 {
	n := int(durationS * g.sampleRate)
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / g.sampleRate
	phase := g.phase
	for i := 0; i < n; i++ {
		out[i] = math.Sin(phase)
		phase += step
	}
	phase = math.Mod(phase, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	g.phase = phase
	return out
}

// Phase returns the oscillator's current running phase, in [0, 2*pi).
func (g *Generator) Phase() float64 {
	return g.phase
}

// SampleRate returns the oscillator's configured sample rate.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}
