// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III streams into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so the Source reports two channels even
// for mono files; down-mixing is left to audio.MonoMixer:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
package mp3
