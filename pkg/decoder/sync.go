// Package decoder implements C8 (the sync tracker) and C9 (the decoder
// pipeline): tone train -> raster, driving pkg/freq, pkg/colorspace and
// pkg/vis.
//
// The sync search here is deliberately the simple sliding-window
// strategy spec.md §4.8 describes, not the Linear Hough Transform slant
// corrector in the pack's SSTV extension package — that corrector was
// read and considered (see DESIGN.md) but is out of scope for this
// component's contract. Its one idea that does carry over is the
// last-resort rule: fall back to the expected position rather than ever
// aborting.
package decoder

import (
	"math"

	"github.com/kb9qz/gosstv/pkg/freq"
	"github.com/kb9qz/gosstv/pkg/mode"
)

const syncSearchStride = 0.0002 // seconds, per spec.md §4.8
const syncTolerance = 200.0     // Hz

// initialCandidateOffsets covers VIS-length variants with tolerance, per
// spec.md §4.8's initial search strategy.
var initialCandidateOffsets = []float64{0.5, 0.61, 0.8, 0.0}

// SyncTracker locates the sample offset of each scan line's sync pulse.
type SyncTracker struct {
	mode       *mode.Spec
	sampleRate float64
}

// NewSyncTracker builds a tracker for m at sampleRate.
func NewSyncTracker(m *mode.Spec, sampleRate float64) *SyncTracker {
	return &SyncTracker{mode: m, sampleRate: sampleRate}
}

// AcquireInitial searches from each of the candidate offsets in turn,
// sliding forward in ~0.2ms steps, and returns the first sample position
// whose sync-pulse-length window estimates to 1200 Hz +-200Hz with three
// sub-windows in agreement. ok is false if nothing matched.
func (s *SyncTracker) AcquireInitial(samples []float64) (pos int, ok bool) {
	stride := strideSamples(s.sampleRate)
	pulseLen := int(s.mode.SyncPulse * s.sampleRate)
	if pulseLen < 1 {
		pulseLen = 1
	}

	for _, c := range initialCandidateOffsets {
		start := int(c * s.sampleRate)
		for p := start; p+pulseLen < len(samples); p += stride {
			if s.checkSync(samples, p, pulseLen) {
				return p, true
			}
		}
	}
	return 0, false
}

// AcquireNext searches forward from cursor for the next line's sync
// pulse, within an upper bound of ~2x the expected line duration. On
// miss it retries once from cursor + half a line duration in an expanded
// window; on a second miss it falls back to the expected position so
// the decoder never aborts mid-frame.
func (s *SyncTracker) AcquireNext(samples []float64, cursor int, lineDuration float64) int {
	expected := cursor
	stride := strideSamples(s.sampleRate)
	pulseLen := int(s.mode.SyncPulse * s.sampleRate)
	if pulseLen < 1 {
		pulseLen = 1
	}

	if pos, ok := s.slideSearch(samples, cursor, cursor+int(2*lineDuration*s.sampleRate), stride, pulseLen); ok {
		return pos
	}

	retryStart := cursor + int(0.5*lineDuration*s.sampleRate)
	if pos, ok := s.slideSearch(samples, retryStart, retryStart+int(2*lineDuration*s.sampleRate), stride, pulseLen); ok {
		return pos
	}

	return expected
}

func (s *SyncTracker) slideSearch(samples []float64, from, to, stride, pulseLen int) (int, bool) {
	for p := from; p+pulseLen < to && p+pulseLen < len(samples); p += stride {
		if s.checkSync(samples, p, pulseLen) {
			return p, true
		}
	}
	return 0, false
}

// checkSync estimates frequency over the full pulse window and three
// sub-windows within it, accepting only when all four agree within
// tolerance of 1200 Hz.
func (s *SyncTracker) checkSync(samples []float64, pos, pulseLen int) bool {
	f := freq.EstimateFrequency(samples[pos:pos+pulseLen], s.sampleRate)
	if math.Abs(f-mode.FreqSync) >= syncTolerance {
		return false
	}

	sub := pulseLen / 3
	if sub < 1 {
		return true
	}
	for i := 0; i < 3; i++ {
		a := pos + i*sub
		b := a + sub
		if b > len(samples) {
			return false
		}
		sf := freq.EstimateFrequency(samples[a:b], s.sampleRate)
		if math.Abs(sf-mode.FreqSync) >= syncTolerance {
			return false
		}
	}
	return true
}

func strideSamples(sampleRate float64) int {
	n := int(syncSearchStride * sampleRate)
	if n < 1 {
		return 1
	}
	return n
}

// LineDuration returns the total duration, in seconds, of one scan line
// of m, sync pulse through the end of the last data segment.
func LineDuration(m *mode.Spec) float64 {
	if m.Format == mode.YUV {
		return m.SyncPulse + m.SyncPorch + m.YScanTime + m.ChromaSeparatorTime + m.ChromaPorchTime + m.ChromaScanTime
	}
	return m.SyncPulse + m.SyncPorch + 3*m.ScanTime + 2*m.SeparatorPulse
}
