// ABOUTME: Curve geometry for the wave and circle display modes
// ABOUTME: Works in canvas units independent of terminal size
package visual

import (
	"fmt"
	"math"
)

const (
	// Amplitude of the wave in canvas units
	Amplitude = 20.0

	// Frequency of the wave in radians per canvas unit
	Frequency = 0.1

	// CircleRadius in canvas units
	CircleRadius = 50.0

	// ViewHeight is the canvas height mapped onto the terminal grid
	ViewHeight = 160.0
)

// Mode selects what the canvas draws
type Mode int

const (
	ModeWave Mode = iota
	ModeCircle
)

func (m Mode) String() string {
	switch m {
	case ModeWave:
		return "wave"
	case ModeCircle:
		return "circle"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// WaveAt returns the y coordinate of the wave at x
func WaveAt(x, height, phase float64) float64 {
	return height/2 + Amplitude*math.Sin((x+phase)*Frequency)
}

// Wave samples the curve at every integer x in [0, width)
func Wave(width, height int, phase float64) []float64 {
	if width <= 0 {
		return nil
	}

	ys := make([]float64, width)
	for x := range ys {
		ys[x] = WaveAt(float64(x), float64(height), phase)
	}
	return ys
}

// MarkerAngle returns where the circle marker sits for a phase, in radians
func MarkerAngle(phase float64) float64 {
	return math.Mod(phase*Frequency, 2*math.Pi)
}
