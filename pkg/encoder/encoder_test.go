package encoder

import (
	"testing"

	"github.com/kb9qz/gosstv/pkg/mode"
	"github.com/kb9qz/gosstv/pkg/raster"
)

const sampleRate = 48000.0

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New("PASOKON7", sampleRate); err == nil {
		t.Fatal("expected an error for an unknown mode name")
	}
}

func TestNewRejectsNonPositiveSampleRate(t *testing.T) {
	if _, err := New("ROBOT36", 0); err == nil {
		t.Fatal("expected an error for a non-positive sample rate")
	}
}

func TestEncodeProducesExpectedDuration(t *testing.T) {
	enc, err := New("MARTIN1", sampleRate)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	img := raster.New(320, 256)
	samples := enc.Encode(img)

	m := mode.MartinM1
	visDuration := 0.3 + 0.01 + 0.03 + 7*0.03 + 0.03 + 0.03 // leader+break+start+7bits+parity+stop, per VIS framing
	lineDuration := m.SyncPulse + m.SyncPorch + 3*m.ScanTime + 2*m.SeparatorPulse
	wantMin := int((visDuration + float64(m.Lines)*lineDuration) * sampleRate * 0.95)
	wantMax := int((visDuration + float64(m.Lines)*lineDuration) * sampleRate * 1.05)

	if len(samples) < wantMin || len(samples) > wantMax {
		t.Errorf("len(samples) = %d, want in [%d,%d]", len(samples), wantMin, wantMax)
	}
}

func TestEncodeSamplesStayInRange(t *testing.T) {
	enc, err := New("SCOTTIE1", sampleRate)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	img := raster.New(320, 256)
	for y := 0; y < 256; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, uint8(x%256), uint8(y%256), 128)
		}
	}
	for _, s := range enc.Encode(img) {
		if s < -1.0001 || s > 1.0001 {
			t.Fatalf("sample %v out of [-1,1]", s)
		}
	}
}

func TestSampleRateAndModeAccessors(t *testing.T) {
	enc, err := New("ROBOT36", sampleRate)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if enc.SampleRate() != sampleRate {
		t.Errorf("SampleRate() = %v, want %v", enc.SampleRate(), sampleRate)
	}
	if enc.Mode().Name != "Robot 36" {
		t.Errorf("Mode().Name = %s, want Robot 36", enc.Mode().Name)
	}
}
