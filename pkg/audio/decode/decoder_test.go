// ABOUTME: Tests for the file opener and WAV decoding
// ABOUTME: Uses generated WAV fixtures and non-audio files
package decode

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV writes a 16-bit WAV fixture and returns its path
func writeWAV(t *testing.T, name string, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to finish fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close fixture: %v", err)
	}

	return path
}

// writeFile writes arbitrary bytes under a test directory
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestOpenUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("hello"))

	stream, err := Open(path)
	if err == nil {
		t.Fatal("expected error for unsupported extension, got nil")
	}
	if stream != nil {
		t.Fatal("expected nil stream for unsupported extension")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "album.flac")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(dir); err == nil {
		t.Fatal("expected error for directory, got nil")
	}
}

func TestOpenNonAudioContent(t *testing.T) {
	// Every decoder must reject content that is not audio
	for _, ext := range Extensions() {
		t.Run(ext, func(t *testing.T) {
			path := writeFile(t, "fake."+ext, []byte("this is definitely not an audio file"))

			stream, err := Open(path)
			if err == nil {
				stream.Close()
				t.Fatalf("expected decode error for fake .%s file", ext)
			}
		})
	}
}

func TestOpenEmptyFile(t *testing.T) {
	for _, ext := range Extensions() {
		t.Run(ext, func(t *testing.T) {
			path := writeFile(t, "empty."+ext, nil)

			if stream, err := Open(path); err == nil {
				stream.Close()
				t.Fatalf("expected error for empty .%s file", ext)
			}
		})
	}
}

func TestOpenWAV(t *testing.T) {
	// Stereo: left ramps, right is negated
	data := []int{0, 0, 100, -100, 200, -200, 300, -300}
	path := writeWAV(t, "ramp.wav", 22050, 2, data)

	stream, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open WAV: %v", err)
	}
	defer stream.Close()

	format := stream.Format()
	if format.Codec != "wav" {
		t.Errorf("expected codec 'wav', got %q", format.Codec)
	}
	if format.SampleRate != 22050 {
		t.Errorf("expected sample rate 22050, got %d", format.SampleRate)
	}
	if format.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", format.Channels)
	}
	if format.BitDepth != 16 {
		t.Errorf("expected 16-bit, got %d", format.BitDepth)
	}
	if stream.Title() != "ramp" {
		t.Errorf("expected title 'ramp', got %q", stream.Title())
	}

	var got []int32
	buf := make([]int32, 3)
	for {
		n, err := stream.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	if len(got) != len(data) {
		t.Fatalf("expected %d samples, got %d", len(data), len(got))
	}
	for i, v := range data {
		if got[i] != int32(v)<<8 {
			t.Errorf("sample %d: expected %d, got %d", i, v<<8, got[i])
		}
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"/music/track.flac", true},
		{"clip.wav", true},
		{"voice.opus", true},
		{"voice.ogg", true},
		{"cover.jpg", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.expected {
			t.Errorf("Supported(%q) = %v, expected %v", tt.path, got, tt.expected)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	if got := titleFromPath("/music/Artist - Song.flac"); got != "Artist - Song" {
		t.Errorf("unexpected title %q", got)
	}
}
