// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidBuffer is returned when a Buffer would break the
	// "every frame has exactly channels samples" invariant or has no rate.
	ErrInvalidBuffer = errors.New("invalid sample buffer")

	// ErrFrameRange is returned when a frame range falls outside a Buffer.
	ErrFrameRange = errors.New("frame range out of bounds")
)
