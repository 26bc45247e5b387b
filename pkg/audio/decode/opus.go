// ABOUTME: Ogg Opus file decoder
// ABOUTME: Decodes .opus/.ogg files with libopusfile via hraban/opus
package decode

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// opusSampleRate is the fixed decode rate of libopusfile
const opusSampleRate = 48000

// OpusStream reads from an Ogg Opus file
type OpusStream struct {
	stream *opus.Stream
	format audio.Format
	title  string
	pcm16  []int16
}

func openOpus(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Opus file: %w", err)
	}

	channels, err := readOpusChannels(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode Opus: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rewind Opus file: %w", err)
	}

	stream, err := opus.NewStream(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode Opus: %w", err)
	}

	s := &OpusStream{
		stream: stream,
		format: audio.Format{
			Codec:      "opus",
			SampleRate: opusSampleRate,
			Channels:   channels,
			BitDepth:   16,
		},
		title: titleFromPath(path),
	}

	log.Printf("Loaded Opus: %s (%s)", s.title, s.format)

	return s, nil
}

// readOpusChannels finds the OpusHead identification header in the first
// Ogg page and returns its channel count
func readOpusChannels(r io.Reader) (int, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	head = head[:n]

	if !bytes.HasPrefix(head, []byte("OggS")) {
		return 0, fmt.Errorf("not an Ogg stream")
	}

	idx := bytes.Index(head, []byte("OpusHead"))
	if idx < 0 || idx+9 >= len(head) {
		return 0, fmt.Errorf("missing OpusHead header")
	}

	// OpusHead: magic(8) version(1) channel count(1)
	channels := int(head[idx+9])
	if channels < 1 {
		return 0, fmt.Errorf("invalid channel count %d", channels)
	}
	return channels, nil
}

// Read decodes the next samples
func (s *OpusStream) Read(samples []int32) (int, error) {
	if cap(s.pcm16) < len(samples) {
		s.pcm16 = make([]int16, len(samples))
	}
	pcm := s.pcm16[:len(samples)]

	// n is samples per channel
	n, err := s.stream.Read(pcm)
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("opus decode error: %w", err)
	}

	total := n * s.format.Channels
	for i := 0; i < total; i++ {
		samples[i] = audio.SampleFromInt16(pcm[i])
	}
	return total, nil
}

func (s *OpusStream) Format() audio.Format { return s.format }
func (s *OpusStream) Title() string        { return s.title }

// Close frees the decoder and closes the file
func (s *OpusStream) Close() error {
	return s.stream.Close()
}
