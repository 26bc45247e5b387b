// ABOUTME: Unbounded FIFO of playback commands
// ABOUTME: Producers never block, the audio worker drains it by polling
package command

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Op identifies what a command asks the audio worker to do
type Op int

const (
	OpPlay Op = iota
	OpStop
	OpTone
)

func (o Op) String() string {
	switch o {
	case OpPlay:
		return "play"
	case OpStop:
		return "stop"
	case OpTone:
		return "tone"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Command is a request sent from the UI (or remote control) to the audio worker
type Command struct {
	ID       string
	Op       Op
	Path     string        // OpPlay only
	Freq     float64       // OpTone only
	Length   time.Duration // OpTone only
	Enqueued time.Time
}

// Play creates a command to decode and play the file at path
func Play(path string) Command {
	return Command{
		ID:       uuid.New().String(),
		Op:       OpPlay,
		Path:     path,
		Enqueued: time.Now(),
	}
}

// Stop creates a command to halt playback
func Stop() Command {
	return Command{
		ID:       uuid.New().String(),
		Op:       OpStop,
		Enqueued: time.Now(),
	}
}

// Tone creates a command to play a generated sine tone
func Tone(freq float64, length time.Duration) Command {
	return Command{
		ID:       uuid.New().String(),
		Op:       OpTone,
		Freq:     freq,
		Length:   length,
		Enqueued: time.Now(),
	}
}

func (c Command) String() string {
	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	switch c.Op {
	case OpPlay:
		return fmt.Sprintf("%s[%s] %s", c.Op, id, c.Path)
	case OpTone:
		return fmt.Sprintf("%s[%s] %.0fHz %v", c.Op, id, c.Freq, c.Length)
	default:
		return fmt.Sprintf("%s[%s]", c.Op, id)
	}
}

// Queue is an unbounded FIFO safe for concurrent use
type Queue struct {
	mu    sync.Mutex
	items []Command
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a command. It never blocks on the consumer.
func (q *Queue) Enqueue(cmd Command) {
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

// TryDequeue removes the oldest command if there is one
func (q *Queue) TryDequeue() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Command{}, false
	}

	cmd := q.items[0]
	q.items[0] = Command{}
	q.items = q.items[1:]
	return cmd, true
}

// Len returns the number of pending commands
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
