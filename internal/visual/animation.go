// ABOUTME: Time-gated animation state for the waveform display
// ABOUTME: Advances the phase at most once per frame threshold
package visual

import "time"

const (
	// DefaultThreshold is the minimum time between captured frames (~60fps)
	DefaultThreshold = 16 * time.Millisecond

	// DefaultStep is how far the phase moves per captured frame
	DefaultStep = 0.5
)

// Animation holds the phase of the scrolling wave
type Animation struct {
	Phase      float64
	LastUpdate time.Time
	Threshold  time.Duration
	Step       float64
}

// NewAnimation creates an animation starting at phase 0
func NewAnimation(now time.Time) *Animation {
	return &Animation{
		LastUpdate: now,
		Threshold:  DefaultThreshold,
		Step:       DefaultStep,
	}
}

// Advance moves the phase forward if at least Threshold has passed since
// the last captured frame. It returns false and leaves the state untouched
// otherwise.
func (a *Animation) Advance(now time.Time) bool {
	if now.Sub(a.LastUpdate) < a.Threshold {
		return false
	}

	a.Phase += a.Step
	a.LastUpdate = now
	return true
}
