// SPDX-License-Identifier: EPL-2.0

// Command wavesel loads an audio file onto a track, replays a selection
// drag over it, runs the effect chain and reports the result.
//
//	wavesel -width 80 -select 10:50 -speed 1.5 -delay 0.25 -decay 0.4 loop.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/effect"
	"github.com/ik5/wavesel/internal/config"
	"github.com/ik5/wavesel/loader"
	"github.com/ik5/wavesel/track"
)

var (
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow)
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		red.Fprintf(os.Stderr, "wavesel: %v\n", err)
		os.Exit(1)
	}
}

type setting struct {
	field effect.Field
	value float64
}

type options struct {
	width      int
	targetRate int
	selectPx   string
	speed      float64
	delay      float64
	decay      float64
	primary    bool
	covers     int
	path       string
}

func parseFlags(args []string, cfg config.Config) (options, error) {
	var o options

	fs := flag.NewFlagSet("wavesel", flag.ContinueOnError)
	fs.IntVar(&o.width, "width", cfg.TrackWidth, "track width in pixels (WAVESEL_TRACK_WIDTH)")
	fs.IntVar(&o.targetRate, "rate", cfg.TargetRate, "resample to this rate, 0 keeps the file rate (WAVESEL_TARGET_RATE)")
	fs.StringVar(&o.selectPx, "select", "", "pixel range start:end to select")
	fs.Float64Var(&o.speed, "speed", 1, "playback speed, 0 or [0.01, 2]")
	fs.Float64Var(&o.delay, "delay", 0, "echo delay in seconds [0, 3]")
	fs.Float64Var(&o.decay, "decay", 0, "echo feedback gain [0, 3]")
	fs.BoolVar(&o.primary, "primary", false, "treat the track as primary")
	fs.IntVar(&o.covers, "covers", 1, "measures covered by the selection, primary tracks only")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if fs.NArg() != 1 {
		return o, errors.New("usage: wavesel [flags] <file>")
	}

	o.path = fs.Arg(0)

	return o, nil
}

func parseRange(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("selection %q: want start:end", s)
	}

	start, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("selection start: %w", err)
	}

	end, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("selection end: %w", err)
	}

	return start, end, nil
}

func run(args []string) error {
	cfg := config.Load()

	o, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetLevel(cfg.Level())
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	role := track.Secondary
	if o.primary {
		role = track.Primary
	}

	ctl := track.New(track.Geometry{Width: float64(o.width)},
		track.WithRole(role), track.WithLogger(log))
	defer ctl.Close()

	var preview *audio.Buffer
	ctl.OnChange(func(b *audio.Buffer) { preview = b })

	l := loader.New(
		loader.WithTargetRate(o.targetRate),
		loader.WithBufferSize(cfg.BufferSize),
		loader.WithLogger(log),
	)

	if err := ctl.Load(ctx, l, o.path); err != nil {
		return err
	}

	settings := []setting{
		{effect.FieldSpeed, o.speed},
		{effect.FieldDelay, o.delay},
		{effect.FieldDecay, o.decay},
	}
	if o.primary {
		settings = append(settings, setting{effect.FieldCovers, float64(o.covers)})
	}

	for _, s := range settings {
		if err := ctl.SetParameter(s.field, s.value); err != nil {
			return err
		}
	}

	if o.selectPx != "" {
		start, end, err := parseRange(o.selectPx)
		if err != nil {
			return err
		}

		ctl.PointerDown(start, 1)
		ctl.PointerMove(end, 1)
		ctl.PointerUp(end, 1)
	}

	report(os.Stdout, o.path, ctl, preview)

	return nil
}
