// Package pcmwav implements the external "PCM sample stream" and "WAV
// container" collaborators from spec.md §6: mono 16-bit signed PCM, and
// the canonical 44-byte PCM WAV container the encoder emits on output.
// Decode accepts any 16-bit PCM RIFF/WAVE file the caller's audio stage
// can hand off, reading the actual sample rate and channel count from
// its fmt chunk rather than assuming 48kHz mono; other bit depths are
// rejected.
package pcmwav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Encode renders samples (each expected in [-1,+1]) as a canonical
// 44-byte-header mono 16-bit PCM WAV file at sampleRate.
func Encode(samples []float64, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	writeU32(buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeU32(buf, 16)
	writeU16(buf, 1) // PCM
	writeU16(buf, 1) // mono
	writeU32(buf, uint32(sampleRate))
	writeU32(buf, uint32(sampleRate*2)) // byte rate
	writeU16(buf, 2)                    // block align
	writeU16(buf, 16)                   // bits per sample

	buf.WriteString("data")
	writeU32(buf, uint32(dataSize))
	for _, s := range samples {
		writeU16(buf, uint16(int16(clampSample(s)*32767)))
	}
	return buf.Bytes()
}

func clampSample(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

func writeU32(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.LittleEndian, v) }
func writeU16(buf *bytes.Buffer, v uint16) { binary.Write(buf, binary.LittleEndian, v) }

// fmtChunk mirrors the 16-byte PCM "fmt " chunk this package reads.
type fmtChunk struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
}

// Decode parses a RIFF/WAVE container, walking chunks so unknown ones
// (LIST, fact, ...) between fmt and data are skipped rather than
// rejected. Multi-channel input is downmixed to mono by averaging.
// Returns samples in [-1,+1] and the sample rate read from the file's
// own fmt chunk.
func Decode(data []byte) (samples []float64, sampleRate int, err error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("pcmwav: not a RIFF/WAVE file")
	}

	var fc fmtChunk
	haveFmt := false
	var pcmData []byte

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			size = len(data) - body
		}
		chunk := data[body : body+size]

		switch id {
		case "fmt ":
			if len(chunk) < 16 {
				return nil, 0, fmt.Errorf("pcmwav: truncated fmt chunk")
			}
			fc = fmtChunk{
				audioFormat:   binary.LittleEndian.Uint16(chunk[0:2]),
				numChannels:   binary.LittleEndian.Uint16(chunk[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(chunk[4:8]),
				byteRate:      binary.LittleEndian.Uint32(chunk[8:12]),
				blockAlign:    binary.LittleEndian.Uint16(chunk[12:14]),
				bitsPerSample: binary.LittleEndian.Uint16(chunk[14:16]),
			}
			haveFmt = true
		case "data":
			pcmData = chunk
		}

		pos = body + size
		if size%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	if !haveFmt {
		return nil, 0, fmt.Errorf("pcmwav: missing fmt chunk")
	}
	if pcmData == nil {
		return nil, 0, fmt.Errorf("pcmwav: missing data chunk")
	}
	if fc.bitsPerSample != 16 {
		return nil, 0, fmt.Errorf("pcmwav: unsupported bits per sample: %d", fc.bitsPerSample)
	}
	channels := int(fc.numChannels)
	if channels < 1 {
		channels = 1
	}

	frameBytes := channels * 2
	numFrames := len(pcmData) / frameBytes
	samples = make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			off := i*frameBytes + c*2
			v := int16(binary.LittleEndian.Uint16(pcmData[off : off+2]))
			sum += float64(v) / 32768.0
		}
		samples[i] = sum / float64(channels)
	}

	return samples, int(fc.sampleRate), nil
}
