// ABOUTME: Sine tone generator stream
// ABOUTME: Produces a finite sine wave, used as a startup sound check
package decode

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
)

// ToneStream generates a stereo sine wave of fixed length
type ToneStream struct {
	frequency  float64
	amplitude  float64
	format     audio.Format
	frameIndex uint64
	frames     uint64
}

// NewTone creates a sine tone of the given frequency, length and amplitude (0-1)
func NewTone(frequency float64, duration time.Duration, amplitude float64, sampleRate int) *ToneStream {
	return &ToneStream{
		frequency: frequency,
		amplitude: amplitude,
		format: audio.Format{
			Codec:      "tone",
			SampleRate: sampleRate,
			Channels:   2,
			BitDepth:   24,
		},
		frames: uint64(duration.Seconds() * float64(sampleRate)),
	}
}

// Read generates the next samples, duplicated to both channels
func (s *ToneStream) Read(samples []int32) (int, error) {
	if s.frameIndex >= s.frames {
		return 0, io.EOF
	}

	numFrames := uint64(len(samples) / 2)
	if remaining := s.frames - s.frameIndex; numFrames > remaining {
		numFrames = remaining
	}

	for i := uint64(0); i < numFrames; i++ {
		t := float64(s.frameIndex+i) / float64(s.format.SampleRate)
		v := audio.SampleFromFloat(math.Sin(2*math.Pi*s.frequency*t) * s.amplitude)
		samples[i*2] = v
		samples[i*2+1] = v
	}

	s.frameIndex += numFrames
	return int(numFrames * 2), nil
}

func (s *ToneStream) Format() audio.Format { return s.format }
func (s *ToneStream) Title() string        { return fmt.Sprintf("Test Tone %.0fHz", s.frequency) }
func (s *ToneStream) Close() error         { return nil }
