// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between sample rates and channel layouts
// Package resample adapts decoded streams to the format of the output device.
//
// Uses linear interpolation for converting between sample rates and
// keeps state between chunks so a stream can be converted piecewise.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out := make([]int32, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
//	stereo := resample.Remix(mono, 1, 2)
package resample
