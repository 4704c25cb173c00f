// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample pipeline and the in-memory buffer the
// rest of the module is built on.
//
// # Source Interface
//
// Decoders and processors all implement Source and can be chained:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames,
// and io.EOF once the stream is finished. Samples are interleaved and
// normalised to [-1, 1].
//
// # Resampling
//
// Resampler interpolates with a Catmull-Rom cubic. NewResampler changes the
// sample rate:
//
//	r := audio.NewResampler(source, 16000)
//
// NewRatioResampler consumes the source faster or slower but keeps the
// reported rate, which is a tape-style speed change:
//
//	fast := audio.NewRatioResampler(buf.Source(), 1.5)
//
// # Channel Mixing
//
// MonoMixer averages every frame down to one channel:
//
//	mono := audio.NewMonoMixer(source)
//
// # Buffers
//
// Buffer holds a whole decoded stream in memory. Buffers are never modified
// after construction; Clone and CopyFrames allocate new ones, each with a
// fresh Version token that caches key on. A nil *Buffer reads as empty.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV")
package audio
