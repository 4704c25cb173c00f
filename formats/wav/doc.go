// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into an audio.Source.
//
// Decoding is delegated to github.com/go-audio/wav. Integer PCM at 16, 24
// and 32 bits is accepted, with any channel count and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Samples are delivered interleaved as float32 in [-1.0, 1.0].
package wav
