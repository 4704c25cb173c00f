// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/wavesel/audio"
)

// Column summarises the samples under one pixel.
type Column struct {
	RMS float32 // sqrt(mean(x^2)), never negative
	Max float32 // largest signed sample
	Min float32 // smallest signed sample
}

// Downsample splits the buffer into width contiguous buckets of
// frames/width frames each, the last bucket taking the remainder, and
// summarises each one. When there are fewer frames than pixels every frame
// gets its own column and the columns past the end stay zero.
//
// The result always has width entries; width <= 0 yields nil. An
// unpopulated buffer yields all-zero columns.
func Downsample(buf *audio.Buffer, width int) []Column {
	if width <= 0 {
		return nil
	}

	cols := make([]Column, width)

	frames := buf.Frames()
	if frames == 0 {
		return cols
	}

	bucket := max(frames/width, 1)
	channels := buf.Channels()
	samples := buf.Samples()

	lastStart := min((width-1)*bucket, frames)
	scratch := make([]float64, (frames-lastStart)*channels)
	if n := bucket * channels; n > len(scratch) {
		scratch = make([]float64, n)
	}
	squares := make([]float64, len(scratch))

	for i := range cols {
		start := min(i*bucket, frames)
		end := min(start+bucket, frames)
		if i == width-1 {
			end = frames
		}

		if start == end {
			continue
		}

		cols[i] = summarise(samples[start*channels:end*channels], scratch, squares)
	}

	return cols
}

func summarise(bucket []float32, scratch, squares []float64) Column {
	x := scratch[:len(bucket)]
	sq := squares[:len(bucket)]

	col := Column{Max: bucket[0], Min: bucket[0]}
	for i, v := range bucket {
		x[i] = float64(v)
		col.Max = max(col.Max, v)
		col.Min = min(col.Min, v)
	}

	vecmath.MulBlock(sq, x, x)

	var sum float64
	for _, v := range sq {
		sum += v
	}

	col.RMS = float32(math.Sqrt(sum / float64(len(bucket))))

	return col
}
