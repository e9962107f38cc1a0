package freq

// FrontEnd selects which frequency-estimation strategy an Estimator runs.
// Both satisfy the same windowed estimate_frequency contract, per
// spec.md's design note on dual Goertzel/FM implementations — runtime
// selection is the one degree of freedom that note calls for; the
// packages each pick their internal algorithm independently.
type FrontEnd int

const (
	Goertzel FrontEnd = iota
	FM
)

func (f FrontEnd) String() string {
	if f == FM {
		return "fm"
	}
	return "goertzel"
}

// Estimator estimates instantaneous frequency over a sample window using
// whichever FrontEnd it was built with. Clean encoder output favours
// Goertzel's lower chroma imbalance; noisy, drifting signals (e.g.
// ISS-class satellite passes) favour the FM path's continuous tracking.
//
// The FM front end owns a single Prefilter for the Estimator's whole
// lifetime: Estimate's successive windows typically overlap (the decoder
// widens each pixel's window past its own stride), so the filter is fed
// forward from wherever it left off rather than restarted per call, and
// each window's result is the mean of the filter's continuous output
// over that span. A fresh Prefilter per call would otherwise run the
// FIR and the phase-difference state from zero on every pixel, never
// reaching the settle time the filter needs.
type Estimator struct {
	kind       FrontEnd
	sampleRate float64
	centerHz   float64
	bandwidth  float64
	kaiserBeta float64

	fmFilter  *Prefilter
	fmOutputs []float64
	fmFed     int
}

// NewEstimator builds an Estimator running the given front end at the
// SSTV band centre (1900 Hz, 800 Hz total bandwidth) with the spec's
// Kaiser beta of 8.0.
func NewEstimator(kind FrontEnd, sampleRate float64) *Estimator {
	return &Estimator{
		kind:       kind,
		sampleRate: sampleRate,
		centerHz:   1900,
		bandwidth:  800,
		kaiserBeta: 8.0,
	}
}

// Estimate returns the estimated instantaneous frequency, in Hz, of
// samples[start:start+length].
func (e *Estimator) Estimate(samples []float64, start, length int) float64 {
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(samples) {
		end = len(samples)
	}
	if end <= start {
		return 0
	}

	switch e.kind {
	case FM:
		return e.estimateFM(samples, start, end)
	default:
		return EstimateFrequency(samples[start:end], e.sampleRate)
	}
}

// estimateFM feeds the filter forward from wherever it last left off up
// to end, then averages its output over [start,end). samples is always
// the same underlying stream across calls on one Estimator, so indices
// are stable and the filter is fed every sample exactly once, in order,
// including the sync/porch spans between windows.
func (e *Estimator) estimateFM(samples []float64, start, end int) float64 {
	if e.fmFilter == nil {
		e.fmFilter = NewPrefilter(e.sampleRate, e.centerHz, e.bandwidth, e.kaiserBeta)
		e.fmOutputs = make([]float64, len(samples))
	}
	for e.fmFed < end {
		e.fmOutputs[e.fmFed] = e.fmFilter.Process(samples[e.fmFed])
		e.fmFed++
	}

	var sum float64
	for i := start; i < end; i++ {
		sum += e.fmOutputs[i]
	}
	mean := sum / float64(end-start)
	return e.centerHz + mean*e.bandwidth/2
}
