// ABOUTME: Tests for audio resampler
// ABOUTME: Tests interpolation, chunk continuity and channel remixing
package resample

import (
	"testing"
)

func TestNewResampler(t *testing.T) {
	r := New(44100, 48000, 2)

	if r.inputRate != 44100 {
		t.Errorf("expected inputRate 44100, got %d", r.inputRate)
	}
	if r.outputRate != 48000 {
		t.Errorf("expected outputRate 48000, got %d", r.outputRate)
	}
	if r.channels != 2 {
		t.Errorf("expected channels 2, got %d", r.channels)
	}
	if r.Passthrough() {
		t.Error("44100 -> 48000 should not be passthrough")
	}
}

func TestResamplePassthroughContinuity(t *testing.T) {
	r := New(48000, 48000, 1)

	first := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	second := []int32{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	var got []int32
	for _, chunk := range [][]int32{first, second} {
		out := make([]int32, r.OutputSamplesNeeded(len(chunk)))
		n := r.Resample(chunk, out)
		got = append(got, out[:n]...)
	}

	// The final frame is held back for the next chunk
	if len(got) != 19 {
		t.Fatalf("expected 19 samples, got %d: %v", len(got), got)
	}
	for i, s := range got {
		if s != int32(i+1) {
			t.Fatalf("sample %d: expected %d, got %d", i, i+1, s)
		}
	}
}

func TestResampleUpsampling(t *testing.T) {
	r := New(24000, 48000, 1)

	out := make([]int32, r.OutputSamplesNeeded(3))
	n := r.Resample([]int32{0, 100, 200}, out)

	expected := []int32{0, 50, 100, 150}
	if n != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), n)
	}
	for i, want := range expected {
		if out[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, out[i])
		}
	}

	// Next chunk interpolates from the held-back frame
	out = make([]int32, r.OutputSamplesNeeded(1))
	n = r.Resample([]int32{300}, out)
	if n != 2 || out[0] != 200 || out[1] != 250 {
		t.Errorf("expected [200 250], got %v", out[:n])
	}
}

func TestResampleDownsampling(t *testing.T) {
	r := New(48000, 24000, 1)

	input := make([]int32, 10)
	for i := range input {
		input[i] = int32(i * 10)
	}

	out := make([]int32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, out)

	expected := []int32{0, 20, 40, 60, 80}
	if n != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), n)
	}
	for i, want := range expected {
		if out[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, out[i])
		}
	}
}

func TestResampleStereoChannelsStaySeparate(t *testing.T) {
	r := New(24000, 48000, 2)

	// Left ramps up, right stays constant
	input := []int32{0, 500, 100, 500, 200, 500}
	out := make([]int32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, out)

	for i := 1; i < n; i += 2 {
		if out[i] != 500 {
			t.Errorf("right channel sample %d: expected 500, got %d", i/2, out[i])
		}
	}
	if out[2] != 50 {
		t.Errorf("expected interpolated left sample 50, got %d", out[2])
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(44100, 48000, 2)
	if n := r.Resample(nil, make([]int32, 16)); n != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", n)
	}
}

func TestResamplerReset(t *testing.T) {
	r := New(48000, 48000, 1)
	r.Resample([]int32{1, 2, 3}, make([]int32, 8))
	r.Reset()

	if r.primed {
		t.Error("expected resampler to be unprimed after reset")
	}
	if r.position != 0 {
		t.Errorf("expected position 0, got %f", r.position)
	}
}

func TestRemix(t *testing.T) {
	tests := []struct {
		name     string
		input    []int32
		from     int
		to       int
		expected []int32
	}{
		{"mono to stereo", []int32{1, 2}, 1, 2, []int32{1, 1, 2, 2}},
		{"stereo to mono", []int32{10, 20, -4, 4}, 2, 1, []int32{15, 0}},
		{"stereo passthrough", []int32{1, 2}, 2, 2, []int32{1, 2}},
		{"surround to stereo", []int32{1, 2, 3, 4, 5, 6}, 6, 2, []int32{1, 2}},
		{"stereo to quad", []int32{1, 2}, 2, 4, []int32{1, 2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remix(tt.input, tt.from, tt.to)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}
