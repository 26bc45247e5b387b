// ABOUTME: WAV file decoder
// ABOUTME: Decodes integer PCM WAV files using go-audio/wav
package decode

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// WAVStream reads from a WAV file
type WAVStream struct {
	file    *os.File
	decoder *wav.Decoder
	format  audio.Format
	title   string
	buf     *goaudio.IntBuffer
}

func openWAV(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		if err := decoder.Err(); err != nil {
			return nil, fmt.Errorf("failed to decode WAV: %w", err)
		}
		return nil, fmt.Errorf("failed to decode WAV: invalid or empty file")
	}

	if decoder.WavAudioFormat != wavFormatPCM {
		f.Close()
		return nil, fmt.Errorf("%w: WAV audio format %d (only integer PCM)", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	s := &WAVStream{
		file:    f,
		decoder: decoder,
		format: audio.Format{
			Codec:      "wav",
			SampleRate: int(decoder.SampleRate),
			Channels:   int(decoder.NumChans),
			BitDepth:   int(decoder.BitDepth),
		},
		title: titleFromPath(path),
	}

	log.Printf("Loaded WAV: %s (%s)", s.title, s.format)

	return s, nil
}

// Read decodes the next samples
func (s *WAVStream) Read(samples []int32) (int, error) {
	if s.buf == nil || len(s.buf.Data) != len(samples) {
		s.buf = &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: s.format.Channels, SampleRate: s.format.SampleRate},
			Data:   make([]int, len(samples)),
		}
	}

	n, err := s.decoder.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav decode error: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		v := s.buf.Data[i]
		if s.format.BitDepth == 8 {
			// 8-bit WAV samples are unsigned
			v -= 128
		}
		samples[i] = audio.SampleFromBits(int32(v), s.format.BitDepth)
	}

	return n, nil
}

func (s *WAVStream) Format() audio.Format { return s.format }
func (s *WAVStream) Title() string        { return s.title }
func (s *WAVStream) Close() error         { return s.file.Close() }
