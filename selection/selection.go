// SPDX-License-Identifier: EPL-2.0

package selection

import (
	"fmt"
	"math"

	"github.com/ik5/wavesel/audio"
)

// Span is an inclusive frame range, Start < End.
type Span struct {
	Start int
	End   int
}

// Len is the number of frames covered, both ends included.
func (s Span) Len() int { return s.End - s.Start + 1 }

// Pixels maps the span back to track coordinates. x1 is the right edge of
// the last selected frame.
func (s Span) Pixels(frameCount int, originX, width float64) (x0, x1 float64) {
	if frameCount <= 0 {
		return originX, originX
	}

	step := width / float64(frameCount)

	return originX + float64(s.Start)*step, originX + float64(s.End+1)*step
}

// Index maps one pixel to a frame index without bounds checking.
func Index(frameCount int, px, originX, width float64) int {
	// Multiplying first keeps integral pixel inputs exact.
	return int(math.Floor((px - originX) * float64(frameCount) / width))
}

// Map converts a pixel range into a validated frame span.
func Map(frameCount int, startPx, endPx, originX, width float64) (Span, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Span{}, fmt.Errorf("width %v: %w", width, ErrInvalidTrackWidth)
	}

	if endPx <= startPx {
		return Span{}, fmt.Errorf("pixels [%v, %v]: %w", startPx, endPx, ErrSelectionEmpty)
	}

	if frameCount <= 0 {
		return Span{}, fmt.Errorf("no frames loaded: %w", ErrSelectionEmpty)
	}

	span := Span{
		Start: Index(frameCount, startPx, originX, width),
		End:   Index(frameCount, endPx, originX, width),
	}

	if span.Start < 0 || span.End >= frameCount {
		return Span{}, fmt.Errorf("frames [%d, %d] of %d: %w",
			span.Start, span.End, frameCount, ErrSelectionOutOfRange)
	}

	if span.End <= span.Start {
		return Span{}, fmt.Errorf("frames [%d, %d]: %w", span.Start, span.End, ErrSelectionEmpty)
	}

	return span, nil
}

// Extract copies the frames under [startPx, endPx] into a new buffer with
// the source's rate and channel count. buf is never modified.
func Extract(buf *audio.Buffer, startPx, endPx, originX, width float64) (*audio.Buffer, Span, error) {
	span, err := Map(buf.Frames(), startPx, endPx, originX, width)
	if err != nil {
		return nil, Span{}, err
	}

	out, err := buf.CopyFrames(span.Start, span.End+1)
	if err != nil {
		return nil, Span{}, fmt.Errorf("%w", err)
	}

	return out, span, nil
}
