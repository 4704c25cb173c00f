// SPDX-License-Identifier: EPL-2.0

// Package waveform reduces a buffer to one summary column per pixel for
// drawing an envelope.
package waveform
