// SPDX-License-Identifier: EPL-2.0

package track

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/effect"
)

// gate blocks its first Apply until released.
type gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gate) Name() string  { return "gate" }
func (g *gate) Enabled() bool { return true }

func (g *gate) Apply(buf *audio.Buffer) *audio.Buffer {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return buf
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func collect(t *testing.T) (func(*audio.Buffer), func(n int) []*audio.Buffer) {
	t.Helper()

	ch := make(chan *audio.Buffer, 16)

	wait := func(n int) []*audio.Buffer {
		var got []*audio.Buffer
		for range n {
			select {
			case b := <-ch:
				got = append(got, b)
			case <-time.After(5 * time.Second):
				t.Fatalf("got %d results, want %d", len(got), n)
			}
		}
		return got
	}

	return func(b *audio.Buffer) { ch <- b }, wait
}

func TestPreviewer_DropsSuperseded(t *testing.T) {
	t.Parallel()

	deliver, wait := collect(t)
	p := NewPreviewer(deliver, quietLogger())
	defer p.Close()

	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	p.chain = func(params effect.Parameters) effect.Chain {
		return append(effect.Chain{g}, effect.NewChain(params)...)
	}

	sel := rampBuffer(t, 100)

	if err := p.Submit(sel, effect.DefaultParameters()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-g.entered

	fast, _ := effect.DefaultParameters().With(effect.FieldSpeed, 2)
	if err := p.Submit(sel, fast); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	close(g.release)

	got := wait(1)
	if got[0].Frames() != 50 {
		t.Errorf("delivered %d frames, want the superseding 50", got[0].Frames())
	}
}

func TestPreviewer_InOrder(t *testing.T) {
	t.Parallel()

	deliver, wait := collect(t)
	p := NewPreviewer(deliver, quietLogger())
	defer p.Close()

	sel := rampBuffer(t, 100)

	for i, want := range []int{100, 50} {
		params := effect.DefaultParameters()
		if i == 1 {
			params, _ = params.With(effect.FieldSpeed, 2)
		}

		if err := p.Submit(sel, params); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		if got := wait(1)[0].Frames(); got != want {
			t.Errorf("result %d = %d frames, want %d", i, got, want)
		}
	}

	if err := p.Submit(nil, effect.DefaultParameters()); err != nil {
		t.Fatalf("Submit(nil) error = %v", err)
	}

	if got := wait(1)[0]; got != nil {
		t.Errorf("cleared selection delivered %v, want nil", got)
	}
}

func TestPreviewer_Cancel(t *testing.T) {
	t.Parallel()

	deliver, wait := collect(t)
	p := NewPreviewer(deliver, quietLogger())
	defer p.Close()

	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	p.chain = func(params effect.Parameters) effect.Chain {
		return append(effect.Chain{g}, effect.NewChain(params)...)
	}

	sel := rampBuffer(t, 100)

	if err := p.Submit(sel, effect.DefaultParameters()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-g.entered

	p.Cancel()
	close(g.release)

	// The next result delivered is the one submitted after Cancel.
	fast, _ := effect.DefaultParameters().With(effect.FieldSpeed, 2)
	if err := p.Submit(sel, fast); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if got := wait(1)[0]; got.Frames() != 50 {
		t.Errorf("delivered %d frames, want 50", got.Frames())
	}
}

func TestPreviewer_Close(t *testing.T) {
	t.Parallel()

	p := NewPreviewer(func(*audio.Buffer) {}, quietLogger())

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := p.Submit(nil, effect.DefaultParameters())
	if !errors.Is(err, ErrPreviewerClosed) {
		t.Errorf("Submit() after Close error = %v, want ErrPreviewerClosed", err)
	}
}
