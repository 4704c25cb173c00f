// SPDX-License-Identifier: EPL-2.0

package track

import "errors"

var (
	// ErrParameterInactive is returned when setting a parameter the track's
	// role does not expose, such as covers on a secondary track.
	ErrParameterInactive = errors.New("parameter inactive for track role")

	// ErrPreviewerClosed is returned by Submit after Close.
	ErrPreviewerClosed = errors.New("previewer closed")
)
