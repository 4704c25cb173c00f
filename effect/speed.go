// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"context"
	"math"

	"github.com/ik5/wavesel/audio"
)

// MinSpeed is the slowest speed the stage accepts. Factors between 0 and
// MinSpeed would stretch a selection beyond any sensible length.
const MinSpeed = 0.01

// Speed plays the buffer back Factor times as fast by resampling, so pitch
// moves with speed. Output length is round(frames / Factor).
type Speed struct {
	Factor float64
}

func (s Speed) Name() string { return "speed" }

// Enabled when MinSpeed <= Factor and Factor != 1.
func (s Speed) Enabled() bool { return s.Factor >= MinSpeed && s.Factor != 1 }

func (s Speed) Apply(buf *audio.Buffer) *audio.Buffer {
	out, _ := s.ApplyContext(context.Background(), buf)
	return out
}

// ApplyContext is Apply with a cancellation check every few thousand frames.
func (s Speed) ApplyContext(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if !s.Enabled() || buf.Empty() {
		return buf, nil
	}

	channels := buf.Channels()
	frames := int(math.Round(float64(buf.Frames()) / s.Factor))
	out := make([]float32, frames*channels)

	rs := audio.NewRatioResampler(buf.Source(), s.Factor)
	filled := 0

	for filled < len(out) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(filled+checkEvery*channels, len(out))
		n, err := rs.ReadSamples(out[filled:end])
		filled += n

		if err != nil || n == 0 {
			break
		}
	}

	// The interpolator stops one source frame early; hold the last value.
	last := buf.Frame(buf.Frames() - 1)
	if filled >= channels {
		last = out[filled-channels : filled]
	}

	for i := filled; i < len(out); i += channels {
		copy(out[i:i+channels], last)
	}

	res, _ := audio.NewBuffer(buf.SampleRate(), channels, out)

	return res, nil
}
