// SPDX-License-Identifier: EPL-2.0

// Package loader turns an audio file into the mono buffer a track works on.
//
// The decoder is chosen by file extension from an audio.Registry. The
// decoded stream is mixed down to one channel, optionally resampled to a
// fixed rate, and collected into an *audio.Buffer:
//
//	l := loader.New(loader.WithTargetRate(44100))
//	buf, err := l.Load(ctx, "drums.aiff")
//	if errors.Is(err, loader.ErrLoad) {
//	    // nothing is substituted on failure
//	}
package loader
