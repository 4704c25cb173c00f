// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	// ErrLoad wraps every failure of Loader.Load.
	ErrLoad = errors.New("load failed")

	// ErrUnsupportedFormat is returned when no decoder is registered for
	// the file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
