// ABOUTME: FLAC file decoder
// ABOUTME: Decodes FLAC frames to interleaved int32 samples using mewkiz/flac
package decode

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACStream reads from a FLAC file
type FLACStream struct {
	file   *os.File
	stream *flac.Stream
	format audio.Format
	title  string

	// decoded samples of the current frame not yet handed out
	pending []int32
}

func openFLAC(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	s := &FLACStream{
		file:   f,
		stream: stream,
		format: audio.Format{
			Codec:      "flac",
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   int(info.BitsPerSample),
		},
		title: titleFromPath(path),
	}

	log.Printf("Loaded FLAC: %s (%s)", s.title, s.format)

	return s, nil
}

// Read decodes frames until samples is full or the stream ends
func (s *FLACStream) Read(samples []int32) (int, error) {
	read := 0

	for read < len(samples) {
		if len(s.pending) == 0 {
			if err := s.nextFrame(); err != nil {
				if err == io.EOF && read > 0 {
					return read, nil
				}
				return read, err
			}
		}

		n := copy(samples[read:], s.pending)
		s.pending = s.pending[n:]
		read += n
	}

	return read, nil
}

// nextFrame parses one frame and interleaves its subframes into pending
func (s *FLACStream) nextFrame() error {
	frame, err := s.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("flac decode error: %w", err)
	}

	channels := s.format.Channels
	blockSize := int(frame.BlockSize)
	out := make([]int32, 0, blockSize*channels)

	for i := 0; i < blockSize; i++ {
		for ch := 0; ch < channels; ch++ {
			out = append(out, audio.SampleFromBits(frame.Subframes[ch].Samples[i], s.format.BitDepth))
		}
	}

	s.pending = out
	return nil
}

func (s *FLACStream) Format() audio.Format { return s.format }
func (s *FLACStream) Title() string        { return s.title }
func (s *FLACStream) Close() error         { return s.file.Close() }
