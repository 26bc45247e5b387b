// ABOUTME: Playback sink that queues decoded streams onto an audio output
// ABOUTME: A single pump goroutine resamples, applies volume and writes
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/decode"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/output"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/resample"
)

// ErrClosed is returned when appending to a closed sink
var ErrClosed = errors.New("sink closed")

// chunkFrames is how many frames the pump reads per iteration (~20ms at 48kHz)
const chunkFrames = 1024

// Stats reports sink activity
type Stats struct {
	Frames  int64        // frames written to the output
	Peak    float64      // peak level of the last chunk (0.0-1.0)
	Queued  int          // streams waiting behind the current one
	Playing string       // title of the current stream
	Format  audio.Format // format of the current stream
}

// Sink plays streams one after another on an output
type Sink struct {
	out        output.Output
	sampleRate int
	channels   int

	mu         sync.Mutex
	queue      []decode.Stream
	current    decode.Stream
	generation uint64 // bumped by Stop
	opened     bool
	closed     bool
	volume     int
	muted      bool
	frames     int64
	peak       float64

	// held by the pump around each output write, and by Stop
	// before its final Clear
	writeMu sync.Mutex

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSink creates a sink writing to out at a fixed output format.
// The output is opened on the first Append.
func NewSink(out output.Output, sampleRate, channels int) *Sink {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Sink{
		out:        out,
		sampleRate: sampleRate,
		channels:   channels,
		volume:     100,
		wake:       make(chan struct{}, 1),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	go s.pump()

	return s
}

// Append queues a stream for playback after anything already queued.
// The sink takes ownership of the stream and closes it when done.
func (s *Sink) Append(stream decode.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		stream.Close()
		return ErrClosed
	}

	if !s.opened {
		if err := s.out.Open(s.sampleRate, s.channels); err != nil {
			stream.Close()
			return fmt.Errorf("failed to open audio output: %w", err)
		}
		s.opened = true
	}

	s.queue = append(s.queue, stream)

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return nil
}

// Stop halts the current stream and discards queued ones
func (s *Sink) Stop() {
	s.mu.Lock()
	s.generation++
	dropped := s.queue
	s.queue = nil
	wasPlaying := s.current != nil
	opened := s.opened
	s.mu.Unlock()

	for _, stream := range dropped {
		stream.Close()
	}

	if opened {
		// unblock a write in flight, wait for it to return, then drop
		// anything it managed to hand to the output
		s.out.Clear()
		s.writeMu.Lock()
		s.out.Clear()
		s.writeMu.Unlock()
	}

	if wasPlaying || len(dropped) > 0 {
		log.Printf("Playback stopped (%d queued streams dropped)", len(dropped))
	}
}

// Empty reports whether nothing is playing or queued
func (s *Sink) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == nil && len(s.queue) == 0
}

// Playing returns the title of the current stream, or "" when idle
func (s *Sink) Playing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Title()
}

// SetVolume sets the volume (0-100)
func (s *Sink) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	s.mu.Lock()
	s.volume = volume
	s.mu.Unlock()
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (s *Sink) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
	log.Printf("Muted: %v", muted)
}

// Volume returns current volume
func (s *Sink) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Muted returns mute state
func (s *Sink) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Stats returns a snapshot of sink activity
func (s *Sink) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Frames: s.frames,
		Peak:   s.peak,
		Queued: len(s.queue),
	}
	if s.current != nil {
		stats.Playing = s.current.Title()
		stats.Format = s.current.Format()
	}
	return stats
}

// Close stops playback and releases the output
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Stop()
	s.cancel()
	<-s.done

	s.mu.Lock()
	opened := s.opened
	s.mu.Unlock()

	if opened {
		return s.out.Close()
	}
	return nil
}

// pump plays queued streams until the sink is closed
func (s *Sink) pump() {
	defer close(s.done)

	for {
		stream, gen, ok := s.next()
		if !ok {
			return
		}
		s.play(stream, gen)
	}
}

// next waits for a queued stream and makes it current
func (s *Sink) next() (decode.Stream, uint64, bool) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, 0, false
		}
		if len(s.queue) > 0 {
			stream := s.queue[0]
			s.queue = s.queue[1:]
			s.current = stream
			gen := s.generation
			s.mu.Unlock()
			return stream, gen, true
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.ctx.Done():
			return nil, 0, false
		}
	}
}

// stale reports whether Stop was called since gen was taken
func (s *Sink) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation != gen || s.closed
}

// play streams one source to the output until it ends or is stopped
func (s *Sink) play(stream decode.Stream, gen uint64) {
	defer func() {
		stream.Close()
		s.mu.Lock()
		if s.current == stream {
			s.current = nil
			s.peak = 0
		}
		s.mu.Unlock()
	}()

	format := stream.Format()
	if format.Channels < 1 || format.SampleRate < 1 {
		log.Printf("Skipping %s: invalid format %s", stream.Title(), format)
		return
	}

	rs := resample.New(format.SampleRate, s.sampleRate, s.channels)
	log.Printf("Playing: %s (%s)", stream.Title(), format)

	in := make([]int32, chunkFrames*format.Channels)
	var out []int32

	for {
		if s.stale(gen) {
			return
		}

		n, err := stream.Read(in)
		if n > 0 {
			remixed := resample.Remix(in[:n], format.Channels, s.channels)

			chunk := remixed
			if !rs.Passthrough() {
				need := rs.OutputSamplesNeeded(len(remixed))
				if cap(out) < need {
					out = make([]int32, need)
				}
				m := rs.Resample(remixed, out[:need])
				chunk = out[:m]
			}

			s.mu.Lock()
			multiplier := getVolumeMultiplier(s.volume, s.muted)
			s.mu.Unlock()

			chunk = applyVolume(chunk, multiplier)

			s.writeMu.Lock()
			if s.stale(gen) {
				s.writeMu.Unlock()
				return
			}
			werr := s.out.Write(chunk)
			s.writeMu.Unlock()
			if werr != nil {
				if !s.stale(gen) {
					log.Printf("Output error while playing %s: %v", stream.Title(), werr)
				}
				return
			}

			s.mu.Lock()
			s.frames += int64(len(chunk) / s.channels)
			s.peak = audio.Peak(chunk)
			s.mu.Unlock()
		}

		if errors.Is(err, io.EOF) {
			log.Printf("Finished: %s", stream.Title())
			return
		}
		if err != nil {
			log.Printf("Decode error in %s: %v", stream.Title(), err)
			return
		}
	}
}

// applyVolume scales samples by the multiplier (full volume returns samples as is)
func applyVolume(samples []int32, multiplier float64) []int32 {
	if multiplier == 1.0 {
		return samples
	}

	result := make([]int32, len(samples))
	for i, sample := range samples {
		result[i] = int32(float64(sample) * multiplier)
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
