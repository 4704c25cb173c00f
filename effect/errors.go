// SPDX-License-Identifier: EPL-2.0

package effect

import "errors"

var (
	// ErrParameterOutOfRange is returned by Parameters.With for a value
	// outside the field's range.
	ErrParameterOutOfRange = errors.New("parameter out of range")

	// ErrUnknownParameter is returned for a Field that does not exist.
	ErrUnknownParameter = errors.New("unknown parameter")
)
