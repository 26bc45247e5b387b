// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM to a persistent oto player through a pipe
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

var errCleared = errors.New("output cleared")

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() Output {
	return &Oto{}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready {
		if o.sampleRate == sampleRate && o.channels == channels {
			return nil
		}
		// oto only allows one context per process
		return fmt.Errorf("oto output already open at %dHz %dch, cannot reopen at %dHz %dch",
			o.sampleRate, o.channels, sampleRate, channels)
	}

	if o.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}

		<-readyChan

		o.otoCtx = ctx
		o.sampleRate = sampleRate
		o.channels = channels
	} else {
		if o.sampleRate != sampleRate || o.channels != channels {
			return fmt.Errorf("oto context exists at %dHz %dch, cannot reopen at %dHz %dch",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
	}

	o.startPlayer()
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels (oto)", sampleRate, channels)

	return nil
}

// startPlayer creates a pipe and a persistent player reading from it (must hold o.mu)
func (o *Oto) startPlayer() {
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
}

// stopPlayer tears down the current pipe and player (must hold o.mu)
func (o *Oto) stopPlayer(cause error) {
	if o.pipeWriter != nil {
		o.pipeWriter.CloseWithError(cause)
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Pause()
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []int32) error {
	o.mu.Lock()
	if !o.ready {
		o.mu.Unlock()
		return ErrNotOpen
	}
	w := o.pipeWriter
	o.mu.Unlock()

	// oto plays 16-bit little-endian
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}

	// Write to pipe (which feeds the persistent player)
	if _, err := w.Write(out); err != nil {
		if errors.Is(err, errCleared) {
			return nil
		}
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Clear drops buffered audio by replacing the player
func (o *Oto) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ready {
		return
	}
	o.stopPlayer(errCleared)
	o.startPlayer()
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopPlayer(io.ErrClosedPipe)
	if o.otoCtx != nil && o.ready {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto suspend error: %v", err)
		}
	}
	o.ready = false
	return nil
}
