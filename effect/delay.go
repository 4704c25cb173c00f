// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"context"
	"math"

	"github.com/ik5/wavesel/audio"
)

// Delay is a recursive feedback echo:
//
//	out[i] = dry[i] + Decay * out[i - d],  d = round(Seconds * rate)
//
// where dry is silent past the end of the input. The output is d frames
// longer than the input so the first echo of the tail is heard.
type Delay struct {
	Seconds float64
	Decay   float64
}

func (d Delay) Name() string { return "delay" }

// Enabled when both Seconds and Decay are positive.
func (d Delay) Enabled() bool { return d.Seconds > 0 && d.Decay > 0 }

// Samples returns the delay length in frames at rate.
func (d Delay) Samples(rate int) int {
	return int(math.Round(d.Seconds * float64(rate)))
}

func (d Delay) Apply(buf *audio.Buffer) *audio.Buffer {
	out, _ := d.ApplyContext(context.Background(), buf)
	return out
}

// ApplyContext is Apply with a cancellation check every few thousand frames.
func (d Delay) ApplyContext(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if !d.Enabled() || buf == nil {
		return buf, nil
	}

	lag := d.Samples(buf.SampleRate())
	if lag == 0 {
		return buf, nil
	}

	channels := buf.Channels()
	dry := buf.Samples()
	out := make([]float32, len(dry)+lag*channels)
	copy(out, dry)

	decay := float32(d.Decay)
	offset := lag * channels
	step := checkEvery * channels

	for start := offset; start < len(out); start += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i := start; i < min(start+step, len(out)); i++ {
			out[i] += decay * out[i-offset]
		}
	}

	res, _ := audio.NewBuffer(buf.SampleRate(), channels, out)

	return res, nil
}
