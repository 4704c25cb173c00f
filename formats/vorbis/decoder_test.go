// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	off        int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.off >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(p, m.samples[m.off:])
	m.off += n

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really a vorbis stream")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{
		sampleRate: 48000,
		channels:   2,
		samples:    []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
	})

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Fatalf("format = %d Hz/%d ch", src.SampleRate(), src.Channels())
	}

	// 5 slots only fit two whole stereo frames
	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != nil || dst[0] != 0.3 {
		t.Fatalf("ReadSamples() = %d, %v (%v)", n, err, dst[:n])
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := newSource(&mockOggReader{sampleRate: 8000, channels: 1, err: boom})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}
