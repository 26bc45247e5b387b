// ABOUTME: Tests for the sine tone generator
// ABOUTME: Tests length, channel duplication and amplitude bounds
package decode

import (
	"io"
	"testing"
	"time"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
)

func TestToneLength(t *testing.T) {
	tone := NewTone(440, 100*time.Millisecond, 0.2, 48000)

	total := 0
	buf := make([]int32, 1000)
	for {
		n, err := tone.Read(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// 100ms at 48kHz stereo = 4800 frames = 9600 samples
	if total != 9600 {
		t.Errorf("expected 9600 samples, got %d", total)
	}
}

func TestToneStereoAndAmplitude(t *testing.T) {
	tone := NewTone(440, time.Second, 0.2, 48000)

	buf := make([]int32, 2000)
	n, err := tone.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limit := int32(0.2*float64(audio.Max24Bit)) + 2
	for i := 0; i < n; i += 2 {
		if buf[i] != buf[i+1] {
			t.Fatalf("frame %d: channels differ (%d vs %d)", i/2, buf[i], buf[i+1])
		}
		if buf[i] > limit || buf[i] < -limit {
			t.Fatalf("frame %d: sample %d exceeds amplitude", i/2, buf[i])
		}
	}

	if audio.Peak(buf[:n]) == 0 {
		t.Error("expected non-silent tone")
	}
}

func TestToneFormat(t *testing.T) {
	tone := NewTone(440, time.Second, 0.2, 44100)

	format := tone.Format()
	if format.SampleRate != 44100 || format.Channels != 2 {
		t.Errorf("unexpected format %s", format)
	}
	if tone.Title() != "Test Tone 440Hz" {
		t.Errorf("unexpected title %q", tone.Title())
	}
	if err := tone.Close(); err != nil {
		t.Errorf("expected Close to succeed, got %v", err)
	}
}
