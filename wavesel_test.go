// SPDX-License-Identifier: EPL-2.0

package wavesel

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/wavesel/internal/audiotest"
)

func TestReadMono_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, c int) float32 {
		if c == 0 {
			return 0.2
		}
		return 0.6
	})

	buf, err := ReadMono(src, 128)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}

	if buf.Channels() != 1 || buf.SampleRate() != 44100 || buf.Frames() != 1000 {
		t.Fatalf("buffer = %d Hz/%d ch/%d frames", buf.SampleRate(), buf.Channels(), buf.Frames())
	}

	for i, v := range buf.Samples() {
		if math.Abs(float64(v-0.4)) > 1e-6 {
			t.Fatalf("sample %d = %v, want 0.4", i, v)
		}
	}
}

func TestReadMono_DefaultBufferSize(t *testing.T) {
	t.Parallel()

	buf, err := ReadMono(audiotest.NewRampSource(8000, 1, 10000), 0)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}

	if buf.Frames() != 10000 {
		t.Errorf("Frames() = %d, want 10000", buf.Frames())
	}
}

func TestReadMono_Empty(t *testing.T) {
	t.Parallel()

	buf, err := ReadMono(audiotest.NewSilentSource(8000, 1, 0), 64)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}

	if !buf.Empty() {
		t.Errorf("Frames() = %d, want 0", buf.Frames())
	}
}

func TestReadMono_SourceError(t *testing.T) {
	t.Parallel()

	_, err := ReadMono(audiotest.NewFailingSource(8000, 2, 10), 4)
	if !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("ReadMono() error = %v, want injected failure", err)
	}
}

type stalledSource struct{ *audiotest.MockSource }

func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestReadMono_NoProgress(t *testing.T) {
	t.Parallel()

	_, err := ReadMono(stalledSource{audiotest.NewSilentSource(8000, 1, 1)}, 4)
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadMono() error = %v, want io.ErrNoProgress", err)
	}
}
