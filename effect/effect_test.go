// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ik5/wavesel/audio"
)

func newBuffer(t testing.TB, rate, channels int, samples []float32) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewBuffer(rate, channels, samples)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	return buf
}

func ramp(frames int) []float32 {
	s := make([]float32, frames)
	for i := range s {
		s[i] = float32(i) / float32(frames)
	}
	return s
}

func TestChain_Identity(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 44100, 1, ramp(1000))
	out := NewChain(DefaultParameters()).Apply(in)

	if !out.Equal(in) {
		t.Fatal("default chain changed the buffer")
	}

	if out == in || &out.Samples()[0] == &in.Samples()[0] {
		t.Error("default chain returned the caller's storage")
	}

	if names := NewChain(DefaultParameters()).Active(); len(names) != 0 {
		t.Errorf("Active() = %v, want none", names)
	}
}

func TestChain_Nil(t *testing.T) {
	t.Parallel()

	if out := NewChain(DefaultParameters()).Apply(nil); out != nil {
		t.Errorf("Apply(nil) = %v, want nil", out)
	}
}

func TestSpeed_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		frames int
		speed  float64
		want   int
	}{
		{1000, 2, 500},
		{1001, 2, 501},
		{1000, 0.5, 2000},
		{44100, 1.5, 29400},
		{3, 0.25, 12},
		{1, 0.5, 2},
		{1, 2, 1},
	}

	for _, tt := range tests {
		in := newBuffer(t, 44100, 1, ramp(tt.frames))
		out := Speed{Factor: tt.speed}.Apply(in)

		if out.Frames() != tt.want {
			t.Errorf("Speed(%v) on %d frames = %d frames, want %d", tt.speed, tt.frames, out.Frames(), tt.want)
		}

		if out.SampleRate() != 44100 || out.Channels() != 1 {
			t.Errorf("Speed(%v) format = %d Hz/%d ch", tt.speed, out.SampleRate(), out.Channels())
		}
	}
}

func TestSpeed_Disabled(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 8000, 1, ramp(100))

	for _, f := range []float64{0, 1, -1, MinSpeed / 2, 1e-300} {
		s := Speed{Factor: f}
		if s.Enabled() {
			t.Errorf("Speed{%v}.Enabled() = true", f)
		}

		if out := s.Apply(in); out != in {
			t.Errorf("Speed{%v}.Apply() did not pass through", f)
		}
	}
}

func TestSpeed_SlowerHoldsShape(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 8000, 1, ramp(200))
	out := Speed{Factor: 0.5}.Apply(in)

	// Twice as many frames covering the same ramp; every even output frame
	// lands on an input frame.
	for i := 0; i < 390; i += 2 {
		want := in.Samples()[i/2]
		if got := out.Samples()[i]; math.Abs(float64(got-want)) > 1e-4 {
			t.Fatalf("frame %d = %v, want %v", i, got, want)
		}
	}

	samples := out.Samples()
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1]-1e-6 {
			t.Fatalf("ramp not monotonic at %d: %v < %v", i, samples[i], samples[i-1])
		}
	}
}

func TestSpeed_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2*500)
	for i := range samples {
		samples[i] = 0.25
	}

	in := newBuffer(t, 8000, 2, samples)

	for _, f := range []float64{0.3, 1.7, 2} {
		out := Speed{Factor: f}.Apply(in)
		if out.Channels() != 2 {
			t.Fatalf("Speed(%v) channels = %d", f, out.Channels())
		}

		for i, v := range out.Samples() {
			if math.Abs(float64(v-0.25)) > 1e-5 {
				t.Fatalf("Speed(%v) sample %d = %v, want 0.25", f, i, v)
			}
		}
	}
}

func TestSpeed_ContinuousThroughUnity(t *testing.T) {
	t.Parallel()

	// A tone at a quarter of the sample rate: 0, 1, 0, -1, ...
	samples := make([]float32, 4000)
	for i := range samples {
		samples[i] = float32(math.Sin(math.Pi / 2 * float64(i)))
	}

	in := newBuffer(t, 8000, 1, samples)

	for _, f := range []float64{0.999, 1.001} {
		var peak float64
		for _, v := range (Speed{Factor: f}).Apply(in).Samples() {
			peak = max(peak, math.Abs(float64(v)))
		}

		if peak < 0.9 {
			t.Errorf("Speed(%v) peak = %.3f, want close to 1", f, peak)
		}
	}
}

func TestSpeed_FasterKeepsContent(t *testing.T) {
	t.Parallel()

	const period = 400

	samples := make([]float32, 2000)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * float64(i) / period))
	}

	out := Speed{Factor: 2}.Apply(newBuffer(t, 8000, 1, samples))
	if out.Frames() != 1000 {
		t.Fatalf("Frames() = %d, want 1000", out.Frames())
	}

	// Output frame i plays input frame 2i.
	for i, got := range out.Samples()[:950] {
		want := math.Sin(2 * math.Pi * float64(2*i) / period)
		if math.Abs(float64(got)-want) > 0.05 {
			t.Fatalf("frame %d = %.4f, want %.4f", i, got, want)
		}
	}
}

func TestSpeed_BelowMinimumKeepsChain(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 44100, 1, ramp(44100))
	out := NewChain(Parameters{Speed: 1e-300, Volume: 1, Covers: 1}).Apply(in)

	if !out.Equal(in) {
		t.Errorf("chain at speed 1e-300 gave %d frames, want the input unchanged (%d)", out.Frames(), in.Frames())
	}
}

// cancelAfter reports cancellation once Err has been called more than n
// times, so a test can stop a stage partway through.
type cancelAfter struct {
	context.Context
	n     int
	calls int
}

func (c *cancelAfter) Err() error {
	c.calls++
	if c.calls > c.n {
		return context.Canceled
	}
	return nil
}

func TestStage_ApplyContextStopsEarly(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 44100, 1, ramp(44100))

	tests := []struct {
		name  string
		stage ContextEffect
	}{
		{"delay", Delay{Seconds: 3, Decay: 0.5}},
		{"speed", Speed{Factor: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := &cancelAfter{Context: context.Background(), n: 1}

			out, err := tt.stage.ApplyContext(ctx, in)
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("ApplyContext() error = %v, want context.Canceled", err)
			}

			if out != nil {
				t.Error("ApplyContext() returned a buffer after cancellation")
			}

			if ctx.calls != 2 {
				t.Errorf("Err() called %d times, want 2", ctx.calls)
			}

			full, err := tt.stage.ApplyContext(context.Background(), in)
			if err != nil || !full.Equal(tt.stage.Apply(in)) {
				t.Errorf("ApplyContext(Background) = %v, differs from Apply()", err)
			}
		})
	}
}

func TestChain_ApplyContextCanceledInsideStage(t *testing.T) {
	t.Parallel()

	// One check before each of the two stages passes; the delay stage's
	// own first check cancels.
	ctx := &cancelAfter{Context: context.Background(), n: 2}
	chain := NewChain(Parameters{Speed: 1, DelaySeconds: 3, Decay: 0.5, Volume: 1, Covers: 1})

	out, err := chain.ApplyContext(ctx, newBuffer(t, 44100, 1, ramp(44100)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ApplyContext() error = %v, want context.Canceled", err)
	}

	if out != nil {
		t.Error("ApplyContext() returned a buffer after cancellation")
	}
}

func TestDelay_Length(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 44100, 1, ramp(1000))
	out := Delay{Seconds: 1, Decay: 0.5}.Apply(in)

	if out.Frames() != 1000+44100 {
		t.Errorf("Frames() = %d, want %d", out.Frames(), 1000+44100)
	}
}

func TestDelay_Silence(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 44100, 1, make([]float32, 500))
	out := Delay{Seconds: 1, Decay: 0.5}.Apply(in)

	for i, v := range out.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestDelay_ImpulseResponse(t *testing.T) {
	t.Parallel()

	// 10 Hz so one second is ten frames.
	in := newBuffer(t, 10, 1, []float32{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	out := Delay{Seconds: 1, Decay: 0.5}.Apply(in)

	if out.Frames() != 35 {
		t.Fatalf("Frames() = %d, want 35", out.Frames())
	}

	want := map[int]float32{0: 1, 10: 0.5, 20: 0.25, 30: 0.125}
	for i, v := range out.Samples() {
		if v != want[i] {
			t.Errorf("sample %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestDelay_Stereo(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 4, 2, []float32{1, -1, 0, 0})
	out := Delay{Seconds: 0.5, Decay: 0.5}.Apply(in)

	want := []float32{1, -1, 0, 0, 0.5, -0.5, 0, 0}
	if out.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", out.Frames())
	}

	for i, v := range out.Samples() {
		if v != want[i] {
			t.Errorf("sample %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestDelay_Disabled(t *testing.T) {
	t.Parallel()

	in := newBuffer(t, 8000, 1, ramp(10))

	for _, d := range []Delay{{0, 0.5}, {1, 0}, {0, 0}, {0.00001, 0.5}} {
		if out := d.Apply(in); out != in {
			t.Errorf("%+v.Apply() did not pass through", d)
		}
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	p := Parameters{Speed: 2, DelaySeconds: 0.5, Decay: 0.5, Volume: 1, Covers: 1}
	chain := NewChain(p)

	if got := chain.Active(); len(got) != 2 || got[0] != "speed" || got[1] != "delay" {
		t.Fatalf("Active() = %v, want [speed delay]", got)
	}

	in := newBuffer(t, 1000, 1, ramp(1000))
	before := in.Clone()
	out := chain.Apply(in)

	// Speed halves to 500 frames before the 500 frame delay tail is added.
	if out.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", out.Frames())
	}

	if !in.Equal(before) {
		t.Error("chain modified its input")
	}
}

func TestChain_ApplyContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := NewChain(DefaultParameters()).ApplyContext(ctx, newBuffer(t, 8000, 1, ramp(10)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ApplyContext() error = %v, want context.Canceled", err)
	}

	if out != nil {
		t.Error("ApplyContext() returned a buffer after cancellation")
	}
}

func BenchmarkChain(b *testing.B) {
	in := newBuffer(b, 44100, 1, ramp(44100))
	chain := NewChain(Parameters{Speed: 1.25, DelaySeconds: 0.25, Decay: 0.4})

	b.ReportAllocs()
	for b.Loop() {
		chain.Apply(in)
	}
}
