// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source.
//
// Decoding is delegated to github.com/go-audio/aiff. Supported:
//   - integer PCM at 16, 24 or 32 bits
//   - any channel count and sample rate
//
// Example:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not FORM/AIFF
//	}
//
// Unsupported bit depths fail with pcm.ErrUnsupportedBitDepth wrapped in the
// returned error.
package aiff
