// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sync/atomic"
)

var bufferVersion atomic.Uint64

// Buffer is an in-memory sequence of interleaved frames.
//
// A Buffer is treated as immutable once built: every transformation in this
// module allocates a new Buffer instead of writing into an existing one.
// Each Buffer carries a process-unique Version token so caches can tell two
// buffers apart even when their contents match.
//
// A nil *Buffer is valid and behaves as an unpopulated, empty buffer.
type Buffer struct {
	sampleRate int
	channels   int
	samples    []float32
	version    uint64
}

// NewBuffer wraps samples (interleaved, channels per frame) in a Buffer.
// The slice is owned by the Buffer afterwards; callers must not modify it.
func NewBuffer(sampleRate, channels int, samples []float32) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("rate %d, channels %d: %w", sampleRate, channels, ErrInvalidBuffer)
	}

	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%d samples for %d channels: %w", len(samples), channels, ErrInvalidBuffer)
	}

	return newBuffer(sampleRate, channels, samples), nil
}

func newBuffer(sampleRate, channels int, samples []float32) *Buffer {
	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		samples:    samples,
		version:    bufferVersion.Add(1),
	}
}

// SampleRate in Hz, 0 for an unpopulated buffer.
func (b *Buffer) SampleRate() int {
	if b == nil {
		return 0
	}
	return b.sampleRate
}

// Channels per frame, 0 for an unpopulated buffer.
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return b.channels
}

// Frames returns the number of frames held.
func (b *Buffer) Frames() int {
	if b == nil || b.channels == 0 {
		return 0
	}
	return len(b.samples) / b.channels
}

// Empty reports whether there is nothing to select or draw.
func (b *Buffer) Empty() bool { return b.Frames() == 0 }

// Version is the identity token of this buffer.
func (b *Buffer) Version() uint64 {
	if b == nil {
		return 0
	}
	return b.version
}

// Samples exposes the interleaved backing slice. It must be treated as read-only.
func (b *Buffer) Samples() []float32 {
	if b == nil {
		return nil
	}
	return b.samples
}

// Frame returns the samples of frame i. It panics when i is out of range,
// like slice indexing does.
func (b *Buffer) Frame(i int) []float32 {
	return b.samples[i*b.channels : (i+1)*b.channels]
}

// Clone returns a deep copy with a fresh Version.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}

	samples := make([]float32, len(b.samples))
	copy(samples, b.samples)

	return newBuffer(b.sampleRate, b.channels, samples)
}

// CopyFrames copies frames [start, end) into a new Buffer with the same
// rate and channel count.
func (b *Buffer) CopyFrames(start, end int) (*Buffer, error) {
	if b == nil {
		return nil, fmt.Errorf("copy from unpopulated buffer: %w", ErrFrameRange)
	}

	if start < 0 || end > b.Frames() || start > end {
		return nil, fmt.Errorf("frames [%d, %d) of %d: %w", start, end, b.Frames(), ErrFrameRange)
	}

	samples := make([]float32, (end-start)*b.channels)
	copy(samples, b.samples[start*b.channels:end*b.channels])

	return newBuffer(b.sampleRate, b.channels, samples), nil
}

// Equal reports whether both buffers hold the same format and samples.
// Versions are not compared.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Frames() == 0 || other.Frames() == 0 {
		return b.Frames() == other.Frames()
	}

	if b.sampleRate != other.sampleRate || b.channels != other.channels ||
		len(b.samples) != len(other.samples) {
		return false
	}

	for i := range b.samples {
		if b.samples[i] != other.samples[i] {
			return false
		}
	}

	return true
}

// Source streams the buffer through the Source interface so it can feed a
// Resampler or MonoMixer. Each call returns an independent reader.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate() }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	samples := s.buf.Samples()
	if s.pos >= len(samples) {
		return 0, io.EOF
	}

	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	n := copy(dst, samples[s.pos:])
	s.pos += n

	if s.pos >= len(samples) {
		return n, io.EOF
	}

	return n, nil
}
