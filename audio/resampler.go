// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/wavesel/utils"
)

// Resampler streams from src at a fixed step through the source using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when the step is larger than one
// source frame.
//
// NewResampler converts between sample rates. NewRatioResampler keeps the
// reported sample rate and only changes how fast the source is consumed,
// which is what a tape-style speed change does.
type Resampler struct {
	src      Source
	outRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// Ring buffer holding 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Position between frames[1] and frames[2], in source frames
	pos float64

	srcBuf []float32
	eof    bool

	// One-pole low-pass state, only used when ratio > 1. alpha = 1/ratio.
	filterState []float32
	useFilter   bool
	filterAlpha float32
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	return newResampler(src, float64(src.SampleRate())/float64(dstRate), dstRate)
}

// NewRatioResampler reads ratio source frames per output frame and reports
// the source sample rate unchanged. ratio must be > 0.
func NewRatioResampler(src Source, ratio float64) *Resampler {
	return newResampler(src, ratio, src.SampleRate())
}

func newResampler(src Source, ratio float64, outRate int) *Resampler {
	channels := src.Channels()

	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// Cutoff follows the output Nyquist frequency; alpha reaches 1
		// (no filtering) as ratio approaches 1.
		filterAlpha = float32(1 / ratio)
	}

	r := &Resampler{
		src:         src,
		outRate:     outRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.outRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Ratio returns how many source frames are consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into frames[slot].
func (r *Resampler) readFrame(slot int) error {
	r.hasFrame[slot] = false
	if r.eof {
		return nil
	}

	n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
	if n > 0 {
		copy(r.frames[slot], r.srcBuf[:n])
		r.hasFrame[slot] = true

		if r.useFilter {
			for c := range r.channels {
				// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
				r.frames[slot][c] = r.filterAlpha*r.frames[slot][c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = r.frames[slot][c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// prime fills frames[1..3] and duplicates the first frame into frames[0] so
// output starts exactly on the first source frame.
func (r *Resampler) prime() error {
	r.primed = true

	for slot := 1; slot < 4; slot++ {
		if slot == 1 && r.useFilter && !r.eof {
			// Seed the filter with the first sample to avoid a warm-up ramp
			n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
			if n > 0 {
				copy(r.filterState, r.srcBuf[:n])
				copy(r.frames[1], r.srcBuf[:n])
				r.hasFrame[1] = true
			}
			if err == io.EOF {
				r.eof = true
			} else if err != nil {
				return fmt.Errorf("%w", err)
			}
			continue
		}

		if err := r.readFrame(slot); err != nil {
			return err
		}
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = r.hasFrame[1]

	return nil
}

// advance shifts the ring by one source frame. It returns io.EOF once there
// is no right-hand neighbour left to interpolate towards.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	if err := r.readFrame(3); err != nil {
		return err
	}

	if !r.hasFrame[2] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces resampled frames into dst.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] || !r.hasFrame[2] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)

		for c := range r.channels {
			y0 := r.frames[0][c]
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]

			y3 := r.frames[2][c]
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
