// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion functions
// Package audio provides the sample types shared by wavecast's decoders and outputs.
//
// All decoded audio is carried as interleaved int32 samples in the 24-bit range,
// whatever the bit depth of the source file. Conversions are provided for:
//   - 16-bit ↔ 24-bit
//   - int32 ↔ packed 24-bit bytes
//   - int32 ↔ float64 in [-1, 1]
//
// Example:
//
//	format := audio.Format{
//	    Codec:      "mp3",
//	    SampleRate: 44100,
//	    Channels:   2,
//	    BitDepth:   16,
//	}
//
//	sample24 := audio.SampleFromInt16(sample16)
package audio
