// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backend selection, ring buffer and null output
package output

import (
	"errors"
	"testing"
	"time"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*Beep)(nil)
	var _ Output = (*Null)(nil)
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"oto", false},
		{"", false},
		{"beep", false},
		{"null", false},
		{"portaudio", true},
	}

	for _, tt := range tests {
		out, err := New(tt.backend)
		if tt.wantErr {
			if err == nil {
				t.Errorf("backend %q: expected error", tt.backend)
			}
			continue
		}
		if err != nil {
			t.Errorf("backend %q: unexpected error %v", tt.backend, err)
		}
		if out == nil {
			t.Errorf("backend %q: nil output", tt.backend)
		}
	}
}

func TestRingBufferWriteRead(t *testing.T) {
	rb := NewRingBuffer(4)

	if n := rb.Write([]int32{1, 2, 3, 4, 5, 6}); n != 4 {
		t.Errorf("expected 4 written, got %d", n)
	}
	if rb.Free() != 0 {
		t.Errorf("expected full buffer, free=%d", rb.Free())
	}

	out := make([]int32, 2)
	if n := rb.Read(out); n != 2 {
		t.Fatalf("expected 2 read, got %d", n)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("unexpected samples %v", out)
	}

	// Wrap around
	rb.Write([]int32{7, 8})
	out = make([]int32, 6)
	n := rb.Read(out)
	if n != 4 {
		t.Fatalf("expected 4 read, got %d", n)
	}
	want := []int32{3, 4, 7, 8, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], out[i])
		}
	}
}

func TestRingBufferReset(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]int32{1, 2, 3})
	rb.Reset()

	if rb.Available() != 0 {
		t.Errorf("expected empty buffer after reset, got %d", rb.Available())
	}
	if rb.Free() != 8 {
		t.Errorf("expected 8 free after reset, got %d", rb.Free())
	}
}

func TestNullWriteBeforeOpen(t *testing.T) {
	n := NewNull(false)
	if err := n.Write([]int32{1}); !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestNullCountsSamples(t *testing.T) {
	n := NewNull(false)
	if err := n.Open(48000, 2); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	n.Write(make([]int32, 100))
	n.Write(make([]int32, 50))

	if n.Written() != 150 {
		t.Errorf("expected 150 samples, got %d", n.Written())
	}

	sr, ch := n.Format()
	if sr != 48000 || ch != 2 {
		t.Errorf("unexpected format %d/%d", sr, ch)
	}
}

func TestNullClearInterruptsPacedWrite(t *testing.T) {
	n := NewNull(true)
	n.Open(1000, 1)

	done := make(chan struct{})
	go func() {
		// 10 seconds worth of samples
		n.Write(make([]int32, 10000))
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			if n.Clears() == 0 {
				t.Error("expected at least one clear")
			}
			return
		case <-ticker.C:
			n.Clear()
		case <-deadline:
			t.Fatal("paced write did not return after Clear")
		}
	}
}
