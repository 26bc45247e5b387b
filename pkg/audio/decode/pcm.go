// ABOUTME: PCM byte conversion helpers
// ABOUTME: Converts 16-bit and 24-bit little-endian PCM to int32 samples
package decode

import (
	"encoding/binary"

	"github.com/Resonate-Protocol/wavecast/pkg/audio"
)

// pcmToSamples converts little-endian PCM bytes of the given bit depth into
// samples, returning the number of samples written. Trailing partial samples
// are ignored.
func pcmToSamples(data []byte, bitDepth int, samples []int32) int {
	if bitDepth == 24 {
		// 24-bit PCM: 3 bytes per sample
		n := min(len(data)/3, len(samples))
		for i := 0; i < n; i++ {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFrom24Bit(b)
		}
		return n
	}

	// 16-bit PCM: 2 bytes per sample (default)
	n := min(len(data)/2, len(samples))
	for i := 0; i < n; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}
	return n
}
