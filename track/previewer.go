// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/effect"
)

type request struct {
	seq    uint64
	sel    *audio.Buffer
	params effect.Parameters
}

// Previewer runs the effect chain on a worker goroutine.
//
// Only the newest request matters: Submit cancels whatever is in flight and
// replaces anything still queued. Results reach deliver in submission order
// and a result is dropped when a newer request exists by the time it is
// ready. A nil selection is delivered as nil.
type Previewer struct {
	deliver func(*audio.Buffer)
	chain   func(effect.Parameters) effect.Chain
	log     logrus.FieldLogger

	mu      sync.Mutex
	seq     uint64
	pending *request
	cancel  context.CancelFunc
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewPreviewer starts the worker. deliver is called from the worker goroutine.
func NewPreviewer(deliver func(*audio.Buffer), log logrus.FieldLogger) *Previewer {
	p := &Previewer{
		deliver: deliver,
		chain:   effect.NewChain,
		log:     log,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	p.wg.Add(1)
	go p.run()

	return p
}

// Submit queues sel for processing with params.
func (p *Previewer) Submit(sel *audio.Buffer, params effect.Parameters) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPreviewerClosed
	}

	p.seq++
	p.pending = &request{seq: p.seq, sel: sel, params: params}
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}

	return nil
}

// Cancel drops the queued request and stops in-flight work without
// delivering anything.
func (p *Previewer) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.pending = nil
	if p.cancel != nil {
		p.cancel()
	}
}

// Close cancels in-flight work and waits for the worker to exit. Pending
// requests are discarded.
func (p *Previewer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}

	p.closed = true
	p.pending = nil
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()

	return nil
}

func (p *Previewer) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}

		for p.step() {
		}
	}
}

// step processes the pending request, if any, and reports whether it did.
func (p *Previewer) step() bool {
	p.mu.Lock()
	req := p.pending
	p.pending = nil
	if req == nil || p.closed {
		p.mu.Unlock()
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	defer cancel()

	out, err := p.chain(req.params).ApplyContext(ctx, req.sel)

	p.mu.Lock()
	p.cancel = nil
	stale := req.seq != p.seq || p.closed
	p.mu.Unlock()

	if err != nil || stale {
		p.log.WithFields(logrus.Fields{
			"function": "Previewer.step",
			"seq":      req.seq,
		}).Debug("Dropped superseded preview")
		return true
	}

	p.deliver(out)

	return true
}
