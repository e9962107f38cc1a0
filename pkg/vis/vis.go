// Package vis implements the VIS (Vertical Interval Signalling) framer:
// the 8-bit, mode-identifying preamble emitted before every scan line
// train and detected at the start of decode.
//
// The overall shape — a scan across the leading audio, per-position
// frequency estimation, parity/mode-table lookup — follows the VIS
// detector in the pack's ham-radio SSTV extension package, but that
// detector estimates frequency via FFT; this one calls pkg/freq's
// Goertzel sweep instead, per spec.md's explicit "estimate frequency
// over a 30 ms window" contract (silent on the estimation method, so
// C2's own contract governs it rather than FFT).
package vis

import (
	"math"

	"github.com/kb9qz/gosstv/pkg/freq"
	"github.com/kb9qz/gosstv/pkg/mode"
	"github.com/kb9qz/gosstv/pkg/tone"
)

const (
	leaderDuration = 0.300
	breakDuration  = 0.010
	startDuration  = 0.030
	bitDuration    = 0.030
	leaderTolerance = 75.0
)

// Emit renders the full VIS preamble for m using gen, advancing gen's
// phase exactly as any other tone emission would.
func Emit(gen *tone.Generator, m *mode.Spec) []float64 {
	var out []float64
	out = append(out, gen.Emit(mode.FreqVISStart, leaderDuration)...)
	out = append(out, gen.Emit(mode.FreqSync, breakDuration)...)
	out = append(out, gen.Emit(mode.FreqVISStart, startDuration)...)

	for i := 0; i < 7; i++ {
		bit := (m.VISCode >> i) & 1
		out = append(out, gen.Emit(bitFreq(bit), bitDuration)...)
	}
	out = append(out, gen.Emit(bitFreq(mode.VISParity(m.VISCode)), bitDuration)...)
	out = append(out, gen.Emit(mode.FreqVISStop, startDuration)...)
	return out
}

// bitFreq maps a VIS data or parity bit to its tone frequency: 0 -> 1300
// Hz, 1 -> 1100 Hz.
func bitFreq(bit byte) float64 {
	if bit == 1 {
		return mode.FreqVISBit1
	}
	return mode.FreqVISBit0
}

// Detect scans the first ~2s of samples at a 0.5ms stride looking for the
// 1900 Hz leader, then reads seven data bits at 30ms each and looks the
// assembled value up in the mode table. On no match within the search
// window, it falls back to Robot 36 and reports ok=false so the caller
// can surface spec.md's UnrecognisedVIS warning.
func Detect(samples []float64, sampleRate float64) (m *mode.Spec, ok bool) {
	stride := int(0.0005 * sampleRate)
	if stride < 1 {
		stride = 1
	}
	bitPeriod := int(bitDuration * sampleRate)
	scanWindow := int(startDuration * sampleRate)
	maxScan := int(2.0 * sampleRate)
	if maxScan > len(samples) {
		maxScan = len(samples)
	}

	for pos := 0; pos+scanWindow < maxScan; pos += stride {
		f := freq.EstimateFrequency(samples[pos:pos+scanWindow], sampleRate)
		if math.Abs(f-mode.FreqVISStart) > leaderTolerance {
			continue
		}

		cursor := pos + bitPeriod
		var code byte
		complete := true
		for i := 0; i < 7; i++ {
			if cursor+bitPeriod > len(samples) {
				complete = false
				break
			}
			bf := freq.EstimateFrequency(samples[cursor:cursor+bitPeriod], sampleRate)
			if bf < mode.FreqVISStop {
				code |= 1 << i
			}
			cursor += bitPeriod
		}
		if !complete {
			continue
		}
		if detected, found := mode.LookupByVIS(code); found {
			return detected, true
		}
	}

	fallback, _ := mode.LookupByName("ROBOT36")
	return fallback, false
}
