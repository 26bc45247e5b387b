// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and backend selection
package output

import (
	"errors"
	"fmt"
)

// ErrNotOpen is returned when writing to an output that was never opened
var ErrNotOpen = errors.New("output not initialized")

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs audio samples (blocks until the device accepts them)
	Write(samples []int32) error

	// Clear drops any audio buffered in the device so output stops now.
	// A Write blocked at the time of the call returns early.
	Clear()

	// Close releases output resources
	Close() error
}

// Backends lists the names accepted by New
var Backends = []string{"oto", "beep", "null"}

// New creates an output by backend name
func New(backend string) (Output, error) {
	switch backend {
	case "oto", "":
		return NewOto(), nil
	case "beep":
		return NewBeep(), nil
	case "null":
		return NewNull(true), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (supported: %v)", backend, Backends)
	}
}
