// ABOUTME: Tests for animation timing
// ABOUTME: Tests the frame threshold gate and phase monotonicity
package visual

import (
	"testing"
	"time"
)

func TestAnimationAdvance(t *testing.T) {
	start := time.Unix(1000, 0)

	tests := []struct {
		name      string
		elapsed   time.Duration
		captured  bool
		wantPhase float64
	}{
		{"too soon", 10 * time.Millisecond, false, 0},
		{"just under threshold", 15*time.Millisecond + 999*time.Microsecond, false, 0},
		{"exactly threshold", 16 * time.Millisecond, true, 0.5},
		{"long pause", 2 * time.Second, true, 0.5},
		{"clock went backwards", -time.Second, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimation(start)
			captured := a.Advance(start.Add(tt.elapsed))

			if captured != tt.captured {
				t.Errorf("expected captured=%v, got %v", tt.captured, captured)
			}
			if a.Phase != tt.wantPhase {
				t.Errorf("expected phase %v, got %v", tt.wantPhase, a.Phase)
			}
			if !captured && !a.LastUpdate.Equal(start) {
				t.Error("ignored frame changed LastUpdate")
			}
		})
	}
}

func TestAnimationPhaseIncreasesAcrossFrames(t *testing.T) {
	now := time.Unix(1000, 0)
	a := NewAnimation(now)

	prev := a.Phase
	for i := 0; i < 100; i++ {
		now = now.Add(16 * time.Millisecond)
		if !a.Advance(now) {
			t.Fatalf("frame %d not captured", i)
		}
		if a.Phase <= prev {
			t.Fatalf("frame %d: phase %v did not increase from %v", i, a.Phase, prev)
		}
		prev = a.Phase
	}

	if a.Phase != 50 {
		t.Errorf("expected phase 50 after 100 frames, got %v", a.Phase)
	}
}

func TestAnimationIgnoresFastFrames(t *testing.T) {
	now := time.Unix(1000, 0)
	a := NewAnimation(now)

	// 5ms redraws: only every fourth one is at least 16ms after the last capture
	captured := 0
	for i := 0; i < 16; i++ {
		now = now.Add(5 * time.Millisecond)
		before := a.Phase
		if a.Advance(now) {
			captured++
		} else if a.Phase != before {
			t.Fatalf("redraw %d changed phase without capture", i)
		}
	}

	if captured != 4 {
		t.Errorf("expected 4 captured frames, got %d", captured)
	}
}
