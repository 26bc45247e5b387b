// ABOUTME: Braille dot canvas for drawing curves in a terminal
// ABOUTME: Each cell holds a 2x4 grid of dots
package visual

import (
	"math"
	"strings"
)

const brailleBase = 0x2800

// dot bit for position (x%2, y%4) inside a braille cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Canvas is a grid of braille cells addressed in dots
type Canvas struct {
	cols  int
	rows  int
	cells []uint8
}

// NewCanvas creates a canvas of cols x rows terminal cells
func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]uint8, cols*rows),
	}
}

// Width returns the canvas width in dots
func (c *Canvas) Width() int { return c.cols * 2 }

// Height returns the canvas height in dots
func (c *Canvas) Height() int { return c.rows * 4 }

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= brailleBits[x%2][y%4]
}

// Line draws a straight line between two dots
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Clear turns off every dot
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// String renders the canvas as lines of braille characters
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			bits := c.cells[row*c.cols+col]
			if bits == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(rune(brailleBase + int(bits)))
		}
	}
	return b.String()
}

// scale returns canvas units per dot
func (c *Canvas) scale() float64 {
	if c.Height() == 0 {
		return 1
	}
	return ViewHeight / float64(c.Height())
}

// DrawWave draws the wave for phase across the full width
func (c *Canvas) DrawWave(phase float64) {
	s := c.scale()
	prevX, prevY := -1, 0
	for px := 0; px < c.Width(); px++ {
		y := WaveAt(float64(px)*s, ViewHeight, phase)
		py := int(math.Round(y / s))
		if prevX >= 0 {
			c.Line(prevX, prevY, px, py)
		} else {
			c.Set(px, py)
		}
		prevX, prevY = px, py
	}
}

// DrawCircle draws the circle centred on the canvas with a marker rotated by phase
func (c *Canvas) DrawCircle(phase float64) {
	s := c.scale()
	cx := float64(c.Width()) / 2
	cy := float64(c.Height()) / 2
	r := CircleRadius / s

	steps := max(int(2*math.Pi*r), 16)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))))
	}

	a := MarkerAngle(phase)
	mx := int(math.Round(cx + r*math.Cos(a)))
	my := int(math.Round(cy + r*math.Sin(a)))
	c.Line(int(math.Round(cx)), int(math.Round(cy)), mx, my)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c.Set(mx+dx, my+dy)
		}
	}
}

// Render draws mode at phase on a fresh canvas of cols x rows cells
func Render(mode Mode, cols, rows int, phase float64) string {
	c := NewCanvas(cols, rows)
	switch mode {
	case ModeCircle:
		c.DrawCircle(phase)
	default:
		c.DrawWave(phase)
	}
	return c.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
