// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/effect"
	"github.com/ik5/wavesel/track"
	"github.com/ik5/wavesel/waveform"
)

var (
	bold  = color.New(color.Bold)
	cyan  = color.New(color.FgCyan)
	green = color.New(color.FgGreen)
	faint = color.New(color.Faint)
)

var bars = []rune(" ▁▂▃▄▅▆▇█")

func duration(b *audio.Buffer) time.Duration {
	if b.SampleRate() == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate())
}

// envelope draws one bar per column, scaled by peak amplitude. Columns in
// [lo, hi) are highlighted.
func envelope(cols []waveform.Column, lo, hi int) string {
	var sb strings.Builder

	for i, c := range cols {
		peak := max(c.Max, -c.Min)
		idx := int(peak * float32(len(bars)-1))
		idx = min(max(idx, 0), len(bars)-1)

		bar := string(bars[idx])
		if i >= lo && i < hi {
			bar = yellow.Sprint(bar)
		}
		sb.WriteString(bar)
	}

	return sb.String()
}

func report(w io.Writer, path string, ctl *track.Controller, preview *audio.Buffer) {
	buf := ctl.Buffer()

	bold.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  %d Hz, %d frames, %v\n", buf.SampleRate(), buf.Frames(), duration(buf))

	lo, hi := 0, 0
	if r, ok := ctl.Highlight(); ok {
		g := ctl.Geometry()
		lo, hi = int(r.X-g.X), int(r.X-g.X+r.W)
	}
	fmt.Fprintf(w, "  |%s|\n", envelope(ctl.Columns(), lo, hi))

	p := ctl.Parameters()
	for _, f := range effect.Fields {
		if f == effect.FieldCovers && ctl.Role() != track.Primary {
			continue
		}
		v, _ := p.Get(f)
		faint.Fprintf(w, "  %-7s", f)
		fmt.Fprintf(w, "%g\n", v)
	}

	span, ok := ctl.Span()
	if !ok {
		faint.Fprintln(w, "  no selection")
		return
	}

	cyan.Fprintf(w, "  selection frames %d..%d (%d)\n", span.Start, span.End, span.Len())

	if preview == nil {
		return
	}

	stats := waveform.Downsample(preview, 1)[0]
	green.Fprintf(w, "  preview %d frames, %v, rms %.4f, peak %.4f/%.4f, stages %v\n",
		preview.Frames(), duration(preview), stats.RMS, stats.Max, stats.Min,
		effect.NewChain(p).Active())
}
