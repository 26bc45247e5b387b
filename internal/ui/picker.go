// ABOUTME: File picker abstraction for choosing an audio file
// ABOUTME: Native dialog implementation backed by zenity
package ui

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// ErrCanceled is returned by a Picker when the user dismissed the dialog
var ErrCanceled = errors.New("file selection canceled")

// Picker asks the user for a file. Pick blocks until the user decides.
type Picker interface {
	Pick() (string, error)
}

// ZenityPicker opens the platform's native file dialog
type ZenityPicker struct {
	Title      string
	Extensions []string // without dots, e.g. "mp3"
}

// Pick shows the dialog filtered to audio files
func (z ZenityPicker) Pick() (string, error) {
	patterns := make([]string, 0, len(z.Extensions))
	for _, ext := range z.Extensions {
		patterns = append(patterns, "*."+ext)
	}

	path, err := zenity.SelectFile(
		zenity.Title(z.Title),
		zenity.FileFilter{
			Name:     "Audio Files",
			Patterns: patterns,
			CaseFold: true,
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	if err != nil {
		return "", fmt.Errorf("file dialog failed: %w", err)
	}

	return path, nil
}
