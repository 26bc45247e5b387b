// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface with oto, beep and null backends
// Package output provides audio playback backends.
//
// Backends:
//   - oto: ebitengine/oto, the default
//   - beep: the faiface/beep speaker mixer
//   - null: discards samples, for headless machines and tests
//
// Example:
//
//	out, err := output.New("oto")
//	err = out.Open(48000, 2)
//	err = out.Write(samples)
//	out.Clear() // stop immediately
package output
