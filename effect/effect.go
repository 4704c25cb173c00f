// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"context"

	"github.com/ik5/wavesel/audio"
)

// AudioEffect transforms a whole buffer.
//
// Apply must not modify its input and must return a buffer with the same
// sample rate and channel count. A disabled effect returns its input.
type AudioEffect interface {
	Name() string
	Enabled() bool
	Apply(buf *audio.Buffer) *audio.Buffer
}

// ContextEffect is an AudioEffect that stops early once ctx is done,
// returning ctx.Err(). Chain.ApplyContext prefers it over Apply.
type ContextEffect interface {
	AudioEffect
	ApplyContext(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error)
}

// checkEvery is the number of frames processed between cancellation checks.
const checkEvery = 4096
