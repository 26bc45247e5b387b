// ABOUTME: Beep speaker audio output implementation
// ABOUTME: Feeds the beep speaker mixer from a ring buffer
package output

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Beep output implementation using the beep speaker
type Beep struct {
	mu         sync.Mutex
	ring       *RingBuffer
	sampleRate int
	channels   int
	ready      bool
	scratch    []int32

	// bumped by Clear so blocked writers give up
	generation atomic.Uint64
}

// NewBeep creates a new Beep output
func NewBeep() Output {
	return &Beep{}
}

// Open initializes the speaker
func (b *Beep) Open(sampleRate, channels int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		if b.sampleRate == sampleRate && b.channels == channels {
			return nil
		}
		return fmt.Errorf("beep output already open at %dHz %dch", b.sampleRate, b.channels)
	}
	if channels < 1 || channels > 2 {
		return fmt.Errorf("beep output supports 1 or 2 channels, got %d", channels)
	}

	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	// 500ms of headroom between writer and speaker
	b.ring = NewRingBuffer(sampleRate * channels / 2)
	b.sampleRate = sampleRate
	b.channels = channels
	b.ready = true

	speaker.Play(beep.StreamerFunc(b.stream))

	log.Printf("Audio output initialized: %dHz, %d channels (beep)", sampleRate, channels)

	return nil
}

// stream is called by the speaker goroutine to pull samples
func (b *Beep) stream(samples [][2]float64) (int, bool) {
	need := len(samples) * b.channels
	if cap(b.scratch) < need {
		b.scratch = make([]int32, need)
	}
	buf := b.scratch[:need]
	b.ring.Read(buf)

	for i := range samples {
		left := audio.SampleToFloat(buf[i*b.channels])
		right := left
		if b.channels == 2 {
			right = audio.SampleToFloat(buf[i*2+1])
		}
		samples[i][0] = left
		samples[i][1] = right
	}

	// Underruns play silence, the streamer never drains
	return len(samples), true
}

// Write queues samples, waiting while the ring is full
func (b *Beep) Write(samples []int32) error {
	b.mu.Lock()
	ready := b.ready
	b.mu.Unlock()
	if !ready {
		return ErrNotOpen
	}

	gen := b.generation.Load()
	written := 0
	for written < len(samples) {
		if b.generation.Load() != gen {
			return nil
		}
		n := b.ring.Write(samples[written:])
		written += n
		if n == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	return nil
}

// Clear empties the ring buffer
func (b *Beep) Clear() {
	b.generation.Add(1)
	if b.ring != nil {
		b.ring.Reset()
	}
}

// Close stops the speaker
func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil
	}
	b.generation.Add(1)
	speaker.Clear()
	speaker.Close()
	b.ready = false
	return nil
}
