// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavesel"
	"github.com/ik5/wavesel/audio"
	"github.com/ik5/wavesel/formats/aiff"
	"github.com/ik5/wavesel/formats/mp3"
	"github.com/ik5/wavesel/formats/vorbis"
	"github.com/ik5/wavesel/formats/wav"
)

// DefaultBufferSize is the number of samples requested per read.
const DefaultBufferSize = 4096

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// Loader reads audio files into mono buffers.
type Loader struct {
	registry   *audio.Registry
	targetRate int
	bufferSize int
	log        logrus.FieldLogger
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry replaces the decoder registry.
func WithRegistry(r *audio.Registry) Option {
	return func(l *Loader) { l.registry = r }
}

// WithTargetRate resamples every file to rate. 0 keeps the file's rate.
func WithTargetRate(rate int) Option {
	return func(l *Loader) { l.targetRate = rate }
}

// WithBufferSize sets the read chunk size in samples.
func WithBufferSize(n int) Option {
	return func(l *Loader) { l.bufferSize = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loader) { l.log = log }
}

// New returns a Loader using DefaultRegistry unless overridden.
func New(opts ...Option) *Loader {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	l := &Loader{
		registry:   DefaultRegistry(),
		bufferSize: DefaultBufferSize,
		log:        quiet,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Formats lists the extensions this loader can read.
func (l *Loader) Formats() []string { return l.registry.Formats() }

// Load decodes path into a mono buffer. Every error wraps ErrLoad.
func (l *Loader) Load(ctx context.Context, path string) (*audio.Buffer, error) {
	log := l.log.WithFields(logrus.Fields{
		"function": "Loader.Load",
		"path":     path,
	})

	buf, err := l.load(ctx, path)
	if err != nil {
		log.WithError(err).Warn("Load failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	log.WithFields(logrus.Fields{
		"sample_rate": buf.SampleRate(),
		"frames":      buf.Frames(),
	}).Info("Loaded audio")

	return buf, nil
}

func (l *Loader) load(ctx context.Context, path string) (*audio.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	dec, ok := l.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	defer src.Close()

	l.log.WithFields(logrus.Fields{
		"function":    "Loader.load",
		"format":      ext,
		"sample_rate": src.SampleRate(),
		"channels":    src.Channels(),
	}).Debug("Decoder opened")

	var stream audio.Source = audio.NewMonoMixer(src)
	if l.targetRate > 0 && l.targetRate != stream.SampleRate() {
		stream = audio.NewResampler(stream, l.targetRate)
	}

	return wavesel.ReadMono(&ctxSource{Source: stream, ctx: ctx}, l.bufferSize)
}

// ctxSource stops a long decode once ctx is done.
type ctxSource struct {
	audio.Source
	ctx context.Context
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}
