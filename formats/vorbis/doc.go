// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis. The decoder already produces float32, so
// samples pass through untouched.
package vorbis
