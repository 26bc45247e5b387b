// ABOUTME: Channel count conversion for interleaved samples
// ABOUTME: Maps mono, stereo and multichannel streams onto the output layout
package resample

// Remix converts interleaved samples from one channel count to another.
// Mono is duplicated to every output channel, downmix to mono averages,
// and any other mismatch keeps the leading channels (repeating the last one).
func Remix(input []int32, from, to int) []int32 {
	if from == to || from <= 0 || to <= 0 {
		return input
	}

	frames := len(input) / from
	out := make([]int32, frames*to)

	for f := 0; f < frames; f++ {
		src := input[f*from : f*from+from]
		dst := out[f*to : f*to+to]

		switch {
		case from == 1:
			for ch := range dst {
				dst[ch] = src[0]
			}
		case to == 1:
			var sum int64
			for _, s := range src {
				sum += int64(s)
			}
			dst[0] = int32(sum / int64(from))
		default:
			for ch := range dst {
				if ch < from {
					dst[ch] = src[ch]
				} else {
					dst[ch] = src[from-1]
				}
			}
		}
	}

	return out
}
