// ABOUTME: Audio file decoding package for multiple container formats
// ABOUTME: Provides the Stream interface and decoders for MP3, FLAC, WAV and Ogg Opus
// Package decode opens audio files and turns them into sample streams.
//
// Supports: MP3 (go-mp3), FLAC (mewkiz/flac), integer PCM WAV (go-audio/wav)
// and Ogg Opus (libopusfile). A sine tone generator implements the same
// interface for sound checks.
//
// All streams output interleaved int32 samples in 24-bit range for
// consistent processing downstream.
//
// Example:
//
//	stream, err := decode.Open("song.flac")
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	n, err := stream.Read(samples)
package decode
