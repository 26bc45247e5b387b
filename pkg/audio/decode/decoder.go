// ABOUTME: Stream interface and file opener
// ABOUTME: Picks a decoder for an audio file by its extension
package decode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Stream is a decoded audio source producing interleaved int32 samples
// in the 24-bit range
type Stream interface {
	// Read fills samples and returns the number written. It returns io.EOF
	// once the stream is exhausted.
	Read(samples []int32) (int, error)

	// Format describes the decoded samples
	Format() audio.Format

	// Title is a display name for the stream
	Title() string

	// Close releases the underlying file
	Close() error
}

// opener creates a stream from a file path
type opener func(path string) (Stream, error)

var openers = map[string]opener{
	".mp3":  openMP3,
	".flac": openFLAC,
	".wav":  openWAV,
	".opus": openOpus,
	".ogg":  openOpus,
}

// Extensions returns the file extensions Open understands, without dots
func Extensions() []string {
	return []string{"mp3", "flac", "wav", "opus", "ogg"}
}

// Supported reports whether path has a decodable extension
func Supported(path string) bool {
	_, ok := openers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Open opens and decodes an audio file
func Open(path string) (Stream, error) {
	ext := strings.ToLower(filepath.Ext(path))
	open, ok := openers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: .mp3, .flac, .wav, .opus, .ogg)", ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("audio file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("audio file is a directory: %s", path)
	}

	return open(path)
}

// titleFromPath returns the file name without its extension
func titleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
