// ABOUTME: Audio worker that executes queued commands against the sink
// ABOUTME: Polls the queue on a fixed interval and runs one command per poll
package command

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/wavecast/pkg/audio/decode"
)

// DefaultPollInterval is how often the worker checks the queue
const DefaultPollInterval = 100 * time.Millisecond

// Sink is the playback device the worker drives
type Sink interface {
	Append(stream decode.Stream) error
	Stop()
}

// EventKind describes the outcome of a command
type EventKind int

const (
	EventPlaying EventKind = iota
	EventStopped
	EventFailed
)

// Event reports what happened to a command. It is informational only.
type Event struct {
	Kind    EventKind
	Command Command
	Title   string
	Err     error
}

// Config holds worker configuration
type Config struct {
	PollInterval time.Duration
	SampleRate   int // rate for generated tones
	Open         func(path string) (decode.Stream, error)
	OnEvent      func(Event)
}

// Worker owns the sink and applies commands to it
type Worker struct {
	queue  *Queue
	sink   Sink
	config Config
	busy   atomic.Bool
}

// NewWorker creates a worker draining queue into sink
func NewWorker(queue *Queue, sink Sink, config Config) *Worker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.SampleRate <= 0 {
		config.SampleRate = 48000
	}
	if config.Open == nil {
		config.Open = decode.Open
	}

	return &Worker{
		queue:  queue,
		sink:   sink,
		config: config,
	}
}

// Run polls the queue until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	log.Printf("Audio worker started (poll every %v)", w.config.PollInterval)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Audio worker stopping")
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll executes at most one pending command and reports whether one ran
func (w *Worker) Poll() bool {
	w.busy.Store(true)
	defer w.busy.Store(false)

	cmd, ok := w.queue.TryDequeue()
	if !ok {
		return false
	}

	w.execute(cmd)
	return true
}

// Busy reports whether a command is being dequeued or executed.
// Check the queue length before Busy to observe a consistent idle state.
func (w *Worker) Busy() bool {
	return w.busy.Load()
}

func (w *Worker) execute(cmd Command) {
	switch cmd.Op {
	case OpPlay:
		stream, err := w.config.Open(cmd.Path)
		if err != nil {
			w.fail(cmd, err)
			return
		}
		w.append(cmd, stream)

	case OpTone:
		w.append(cmd, decode.NewTone(cmd.Freq, cmd.Length, 0.2, w.config.SampleRate))

	case OpStop:
		w.sink.Stop()
		log.Printf("Executed %s", cmd)
		w.emit(Event{Kind: EventStopped, Command: cmd})

	default:
		w.fail(cmd, fmt.Errorf("unknown command op %d", int(cmd.Op)))
	}
}

func (w *Worker) append(cmd Command, stream decode.Stream) {
	title := stream.Title()
	if err := w.sink.Append(stream); err != nil {
		w.fail(cmd, err)
		return
	}

	log.Printf("Executed %s (queued after %v)", cmd, time.Since(cmd.Enqueued).Round(time.Millisecond))
	w.emit(Event{Kind: EventPlaying, Command: cmd, Title: title})
}

// fail logs and drops a command
func (w *Worker) fail(cmd Command, err error) {
	log.Printf("Dropped %s: %v", cmd, err)
	w.emit(Event{Kind: EventFailed, Command: cmd, Err: err})
}

func (w *Worker) emit(ev Event) {
	if w.config.OnEvent != nil {
		w.config.OnEvent(ev)
	}
}
