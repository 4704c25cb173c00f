// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"context"
	"fmt"

	"github.com/ik5/wavesel/audio"
)

// Chain runs its effects in slice order.
type Chain []AudioEffect

// NewChain returns the standard chain for p: Speed, then Delay.
func NewChain(p Parameters) Chain {
	return Chain{
		Speed{Factor: p.Speed},
		Delay{Seconds: p.DelaySeconds, Decay: p.Decay},
	}
}

// Active returns the names of the enabled stages, in order.
func (c Chain) Active() []string {
	var names []string
	for _, e := range c {
		if e.Enabled() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Apply runs every enabled stage on a copy of buf. A nil buf yields nil.
func (c Chain) Apply(buf *audio.Buffer) *audio.Buffer {
	out, _ := c.ApplyContext(context.Background(), buf)
	return out
}

// ApplyContext is Apply with a cancellation check before each stage.
// Stages implementing ContextEffect are also stopped partway through.
func (c Chain) ApplyContext(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if buf == nil {
		return nil, nil
	}

	out := buf.Clone()

	for _, e := range c {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before %s: %w", e.Name(), err)
		}

		if !e.Enabled() {
			continue
		}

		ce, ok := e.(ContextEffect)
		if !ok {
			out = e.Apply(out)
			continue
		}

		next, err := ce.ApplyContext(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = next
	}

	return out, nil
}
