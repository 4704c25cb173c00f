// SPDX-License-Identifier: EPL-2.0

package track

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/effect"
	"github.com/ik5/wavesel/selection"
	"github.com/ik5/wavesel/waveform"
)

// Loader produces the buffer a track works on. *loader.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, path string) (*audio.Buffer, error)
}

// Control receives pointer events that land outside the header row, such
// as the sliders that end up calling SetParameter.
type Control interface {
	Contains(x, y float64) bool
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
}

// Controller is the state of one track. See the package documentation for
// the selection protocol.
type Controller struct {
	geom     Geometry
	role     Role
	log      logrus.FieldLogger
	controls []Control
	async    bool

	buf    *audio.Buffer
	cache  waveform.Cache
	params effect.Parameters

	state  State
	startX float64
	endX   float64
	span   selection.Span
	sel    *audio.Buffer

	active  Control
	preview *Previewer

	mu       sync.Mutex
	modified *audio.Buffer
	onChange func(*audio.Buffer)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRole sets the track role. Tracks are Secondary by default.
func WithRole(r Role) Option {
	return func(c *Controller) { c.role = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithControls registers collaborators for events outside the header row.
// The first control containing a pointer-down receives the whole gesture.
func WithControls(controls ...Control) Option {
	return func(c *Controller) { c.controls = append(c.controls, controls...) }
}

// WithAsyncPreview runs the effect chain on a Previewer worker. Call Close
// to stop it.
func WithAsyncPreview() Option {
	return func(c *Controller) { c.async = true }
}

// New returns an idle controller with nothing loaded.
func New(geom Geometry, opts ...Option) *Controller {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Controller{
		geom:   geom,
		log:    quiet,
		params: effect.DefaultParameters(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.async {
		c.preview = NewPreviewer(c.deliver, c.log)
	}

	return c
}

// Close stops the preview worker, if any.
func (c *Controller) Close() error {
	if c.preview == nil {
		return nil
	}
	return c.preview.Close()
}

// OnChange registers the single observer of preview results. nil means
// there is no content to preview. Registering again replaces the observer.
func (c *Controller) OnChange(fn func(*audio.Buffer)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Load reads path with l and installs the result. On error the current
// buffer and selection are left as they were.
func (c *Controller) Load(ctx context.Context, l Loader, path string) error {
	buf, err := l.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	c.Install(buf)

	return nil
}

// Install replaces the track buffer, drops any selection and invalidates
// the cached columns. An existing selection is reported to the observer as
// cleared.
func (c *Controller) Install(buf *audio.Buffer) {
	hadSelection := c.sel != nil

	c.buf = buf
	c.cache.Invalidate()
	c.state = Idle
	c.sel = nil
	c.span = selection.Span{}

	c.log.WithFields(logrus.Fields{
		"function":    "Controller.Install",
		"sample_rate": buf.SampleRate(),
		"frames":      buf.Frames(),
		"version":     buf.Version(),
	}).Info("Installed buffer")

	if hadSelection {
		c.publish()
	}
}

// Buffer returns the loaded buffer, nil when nothing is loaded.
func (c *Controller) Buffer() *audio.Buffer { return c.buf }

// State returns the selection state.
func (c *Controller) State() State { return c.state }

// Span returns the committed frame range.
func (c *Controller) Span() (selection.Span, bool) {
	return c.span, c.state == Selected
}

// Selection returns the committed, unprocessed selection buffer.
func (c *Controller) Selection() *audio.Buffer { return c.sel }

// Modified returns the last result handed to the observer, or nil while a
// new selection is being dragged.
func (c *Controller) Modified() *audio.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modified
}

// PointerDown starts a selection inside the header row, otherwise it is
// forwarded to the control under the pointer.
func (c *Controller) PointerDown(x, y float64) {
	if c.geom.InHeader(x, y) {
		c.state = Selecting
		c.startX, c.endX = x, x
		c.sel = nil
		c.span = selection.Span{}

		if c.preview != nil {
			c.preview.Cancel()
		}

		c.mu.Lock()
		c.modified = nil
		c.mu.Unlock()

		return
	}

	for _, ctl := range c.controls {
		if ctl.Contains(x, y) {
			c.active = ctl
			ctl.PointerDown(x, y)
			return
		}
	}
}

// PointerMove tracks the provisional end of a selection. Nothing is
// recomputed until the pointer is released.
func (c *Controller) PointerMove(x, y float64) {
	switch {
	case c.state == Selecting:
		c.endX = x
	case c.active != nil:
		c.active.PointerMove(x, y)
	}
}

// PointerUp commits the selection ending at x.
func (c *Controller) PointerUp(x, y float64) {
	switch {
	case c.state == Selecting:
		c.endX = x
		c.commit()
	case c.active != nil:
		c.active.PointerUp(x, y)
		c.active = nil
	}
}

func (c *Controller) commit() {
	sel, span, err := selection.Extract(c.buf, c.startX, c.endX, c.geom.X, c.geom.Width)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"function": "Controller.commit",
			"start_x":  c.startX,
			"end_x":    c.endX,
		}).WithError(err).Debug("Selection rejected")

		c.state = Idle
		c.sel = nil
		c.span = selection.Span{}
		c.publish()

		return
	}

	c.state = Selected
	c.sel = sel
	c.span = span

	c.log.WithFields(logrus.Fields{
		"function":    "Controller.commit",
		"start_index": span.Start,
		"end_index":   span.End,
		"frames":      span.Len(),
	}).Info("Selection committed")

	c.publish()
}

// SetParameter updates one parameter and reruns the chain when the field
// feeds it. Speed updates are ignored once speed has been set to 0.
func (c *Controller) SetParameter(f effect.Field, value float64) error {
	if f == effect.FieldCovers && c.role != Primary {
		return fmt.Errorf("%v on %v track: %w", f, c.role, ErrParameterInactive)
	}

	if f == effect.FieldSpeed && c.params.SpeedLocked() {
		return nil
	}

	p, err := c.params.With(f, value)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"function": "Controller.SetParameter",
			"field":    f.String(),
			"value":    value,
		}).WithError(err).Warn("Parameter rejected")

		return fmt.Errorf("%w", err)
	}

	c.params = p

	if f.AffectsChain() && c.sel != nil {
		c.publish()
	}

	return nil
}

// ResetEffects restores the chain and display parameters to their
// defaults. Covers is kept.
func (c *Controller) ResetEffects() {
	covers := c.params.Covers
	c.params = effect.DefaultParameters()
	c.params.Covers = covers

	if c.sel != nil {
		c.publish()
	}
}

// Parameters returns the current parameter set.
func (c *Controller) Parameters() effect.Parameters { return c.params }

// publish runs the chain on the current selection, or reports a cleared
// selection, and notifies the observer.
func (c *Controller) publish() {
	if c.preview != nil {
		if err := c.preview.Submit(c.sel, c.params); err != nil {
			c.log.WithError(err).Warn("Preview not submitted")
		}
		return
	}

	chain := effect.NewChain(c.params)
	out := chain.Apply(c.sel)

	c.log.WithFields(logrus.Fields{
		"function":   "Controller.publish",
		"stages":     chain.Active(),
		"in_frames":  c.sel.Frames(),
		"out_frames": out.Frames(),
	}).Debug("Recomputed preview")

	c.deliver(out)
}

func (c *Controller) deliver(out *audio.Buffer) {
	c.mu.Lock()
	c.modified = out
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(out)
	}
}

// Columns returns the waveform columns for the track width, computed once
// per installed buffer.
func (c *Controller) Columns() []waveform.Column {
	return c.cache.Columns(c.buf, int(c.geom.Width))
}

// Highlight returns the rectangle to shade for the current or provisional
// selection.
func (c *Controller) Highlight() (Rect, bool) {
	h := c.geom.rowHeight()

	switch c.state {
	case Selecting:
		if c.endX <= c.startX {
			return Rect{}, false
		}
		return Rect{X: c.startX, Y: c.geom.Y, W: c.endX - c.startX, H: h}, true
	case Selected:
		x0, x1 := c.span.Pixels(c.buf.Frames(), c.geom.X, c.geom.Width)
		return Rect{X: x0, Y: c.geom.Y, W: x1 - x0, H: h}, true
	default:
		return Rect{}, false
	}
}

// Role returns the track role.
func (c *Controller) Role() Role { return c.role }

// SetRole switches the role, which changes Height and whether covers can
// be set.
func (c *Controller) SetRole(r Role) { c.role = r }

// Geometry returns the track placement.
func (c *Controller) Geometry() Geometry { return c.geom }

// Height is the number of rows of the role times the row height.
func (c *Controller) Height() float64 {
	return float64(c.role.rows()) * c.geom.rowHeight()
}

// SetY moves the track vertically.
func (c *Controller) SetY(y float64) { c.geom.Y = y }

// Contains reports whether (x, y) is anywhere on the track, edges included.
func (c *Controller) Contains(x, y float64) bool {
	g := c.geom
	return x >= g.X && x <= g.X+g.Width && y >= g.Y && y <= g.Y+c.Height()
}
