// SPDX-License-Identifier: EPL-2.0

package selection

import "errors"

var (
	// ErrSelectionEmpty is returned when the dragged range does not cover at
	// least two frames, or there is nothing loaded to select from.
	ErrSelectionEmpty = errors.New("selection is empty")

	// ErrSelectionOutOfRange is returned when a pixel maps outside [0, frame count).
	ErrSelectionOutOfRange = errors.New("selection out of range")

	// ErrInvalidTrackWidth is returned for a track width <= 0.
	ErrInvalidTrackWidth = errors.New("track width must be positive")
)
