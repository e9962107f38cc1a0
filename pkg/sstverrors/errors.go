// Package sstverrors defines the error kinds surfaced by the encoder and
// decoder pipelines. Structural errors (InvalidMode, InvalidSampleRate)
// are fatal to the caller; the rest are recovered where possible and
// reported alongside a best-effort result.
package sstverrors

import "fmt"

// InvalidMode is returned when a caller asks the encoder for a mode name
// that is not in the mode table. Fatal — this is a caller bug.
type InvalidMode struct {
	Name string
}

func (e *InvalidMode) Error() string {
	return fmt.Sprintf("sstv: invalid mode %q", e.Name)
}

// UnrecognisedVIS is returned when VIS detection could not match any
// registered mode within the search window. The decoder does not fail:
// it falls back to Robot 36 and continues, but surfaces this as a warning.
type UnrecognisedVIS struct{}

func (e *UnrecognisedVIS) Error() string {
	return "sstv: VIS preamble not recognised, defaulted to Robot 36"
}

// NoSync is returned when no 1200 Hz sync pulse could be found anywhere
// in the initial search window. This is the one content error that does
// fail the decode outright — there is nothing downstream to decode.
type NoSync struct {
	Reason string
}

func (e *NoSync) Error() string {
	return fmt.Sprintf("sstv: no sync pulse found: %s", e.Reason)
}

// TruncatedInput is returned when the sample stream ended before all
// lines of the detected mode were decoded. The decoder still delivers
// the partial raster, with undecoded lines left at their initial value.
type TruncatedInput struct {
	LinesDecoded int
	LinesWanted  int
}

func (e *TruncatedInput) Error() string {
	return fmt.Sprintf("sstv: input truncated after %d of %d lines", e.LinesDecoded, e.LinesWanted)
}

// InvalidSampleRate is returned when a non-positive sample rate is
// supplied to an encoder or decoder. Fatal.
type InvalidSampleRate struct {
	Rate float64
}

func (e *InvalidSampleRate) Error() string {
	return fmt.Sprintf("sstv: invalid sample rate: %v", e.Rate)
}
