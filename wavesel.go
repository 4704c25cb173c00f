// SPDX-License-Identifier: EPL-2.0

package wavesel

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavesel/audio"
)

// ReadMono drains src into a mono in-memory buffer. Multi-channel sources are
// averaged down to one channel by audio.MonoMixer, so the result always has
// Channels() == 1. bufferSize is the number of frames requested per read.
//
// The source is not closed.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := wavesel.ReadMono(src, 4096)
func ReadMono(src audio.Source, bufferSize int) (*audio.Buffer, error) {
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}

	mono := audio.NewMonoMixer(src)
	chunk := make([]float32, bufferSize)
	samples := make([]float32, 0, src.SampleRate())

	for {
		n, err := mono.ReadSamples(chunk)
		if n > 0 {
			samples = append(samples, chunk[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading mono samples: %w", err)
		}

		if n == 0 {
			// A source that returns nothing without EOF would spin forever
			return nil, fmt.Errorf("reading mono samples: %w", io.ErrNoProgress)
		}
	}

	buf, err := audio.NewBuffer(src.SampleRate(), 1, samples)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return buf, nil
}
