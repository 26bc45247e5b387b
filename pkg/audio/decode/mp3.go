// ABOUTME: MP3 file decoder
// ABOUTME: Decodes MP3 files to int32 samples using go-mp3
package decode

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Stream reads from an MP3 file
type MP3Stream struct {
	file    *os.File
	decoder *mp3.Decoder
	format  audio.Format
	title   string
	buf     []byte
}

func openMP3(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	s := &MP3Stream{
		file:    f,
		decoder: decoder,
		format: audio.Format{
			Codec:      "mp3",
			SampleRate: decoder.SampleRate(),
			Channels:   2, // go-mp3 always outputs stereo
			BitDepth:   16,
		},
		title: titleFromPath(path),
	}

	log.Printf("Loaded MP3: %s (%s)", s.title, s.format)

	return s, nil
}

// Read decodes the next samples
func (s *MP3Stream) Read(samples []int32) (int, error) {
	// MP3 decoder outputs int16 = 2 bytes per sample
	numBytes := len(samples) * 2
	if cap(s.buf) < numBytes {
		s.buf = make([]byte, numBytes)
	}
	buf := s.buf[:numBytes]

	n, err := io.ReadFull(s.decoder, buf)
	if n == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	return pcmToSamples(buf[:n], 16, samples), nil
}

func (s *MP3Stream) Format() audio.Format { return s.format }
func (s *MP3Stream) Title() string        { return s.title }
func (s *MP3Stream) Close() error         { return s.file.Close() }
