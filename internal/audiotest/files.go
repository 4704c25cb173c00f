// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
)

// WriteWAV encodes integer PCM data as a WAV file under t.TempDir and
// returns its path.
func WriteWAV(tb testing.TB, name string, sampleRate, channels, bitDepth int, data []int) string {
	tb.Helper()

	f, path := create(tb, name)
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, channels, bitDepth, data)); err != nil {
		tb.Fatalf("encoding %s: %v", name, err)
	}
	finish(tb, f, enc.Close)

	return path
}

// WriteAIFF is WriteWAV for AIFF files.
func WriteAIFF(tb testing.TB, name string, sampleRate, channels, bitDepth int, data []int) string {
	tb.Helper()

	f, path := create(tb, name)
	enc := aiff.NewEncoder(f, sampleRate, bitDepth, channels)
	if err := enc.Write(intBuffer(sampleRate, channels, bitDepth, data)); err != nil {
		tb.Fatalf("encoding %s: %v", name, err)
	}
	finish(tb, f, enc.Close)

	return path
}

// WriteRaw stores arbitrary bytes, for corrupt-file cases.
func WriteRaw(tb testing.TB, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("writing %s: %v", name, err)
	}

	return path
}

func intBuffer(sampleRate, channels, bitDepth int, data []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

func create(tb testing.TB, name string) (*os.File, string) {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating %s: %v", name, err)
	}

	return f, path
}

func finish(tb testing.TB, f *os.File, closeEncoder func() error) {
	tb.Helper()

	if err := closeEncoder(); err != nil {
		tb.Fatalf("closing encoder: %v", err)
	}

	if err := f.Close(); err != nil {
		tb.Fatalf("closing file: %v", err)
	}
}
