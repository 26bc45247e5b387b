// ABOUTME: Null audio output that discards samples
// ABOUTME: Used on machines without a sound device and in tests
package output

import (
	"sync"
	"time"
)

// Null output implementation that only counts samples
type Null struct {
	mu         sync.Mutex
	pace       bool
	sampleRate int
	channels   int
	ready      bool
	written    int64
	clears     int
	clearCh    chan struct{}
}

// NewNull creates a null output. With pace set, Write sleeps for the
// real-time duration of the samples like a device would.
func NewNull(pace bool) *Null {
	return &Null{
		pace:    pace,
		clearCh: make(chan struct{}),
	}
}

// Open records the format
func (n *Null) Open(sampleRate, channels int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sampleRate = sampleRate
	n.channels = channels
	n.ready = true
	return nil
}

// Write discards samples
func (n *Null) Write(samples []int32) error {
	n.mu.Lock()
	if !n.ready {
		n.mu.Unlock()
		return ErrNotOpen
	}
	n.written += int64(len(samples))
	clearCh := n.clearCh
	var d time.Duration
	if n.pace && n.sampleRate > 0 && n.channels > 0 {
		d = time.Duration(len(samples)/n.channels) * time.Second / time.Duration(n.sampleRate)
	}
	n.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-clearCh:
		}
	}
	return nil
}

// Clear wakes a pacing writer
func (n *Null) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clears++
	close(n.clearCh)
	n.clearCh = make(chan struct{})
}

// Close marks the output closed
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ready = false
	return nil
}

// Written returns the total number of samples accepted
func (n *Null) Written() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.written
}

// Clears returns how many times Clear was called
func (n *Null) Clears() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clears
}

// Format returns the opened sample rate and channel count
func (n *Null) Format() (sampleRate, channels int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sampleRate, n.channels
}
