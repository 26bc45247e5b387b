// ABOUTME: Visual package for the animated display
// ABOUTME: Animation timing plus wave and circle rendering
// Package visual renders the decorative animation shown while playing.
//
// Animation.Advance gates phase updates to one per frame threshold, and
// Render rasterises a sine wave or a circle onto a braille Canvas sized to
// the terminal.
package visual
