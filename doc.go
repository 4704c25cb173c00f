// SPDX-License-Identifier: EPL-2.0

// Package wavesel is a waveform selection and effects-preview engine for a
// single mono audio track.
//
// A user drags across the track's header row; the selected frame range is
// copied out of the loaded buffer, run through an ordered effect chain
// (speed change, then feedback delay) and handed to a subscriber for
// preview. Independently the loaded buffer is reduced to one RMS/max/min
// column per pixel for drawing.
//
// # Packages
//
//   - audio: Source pipeline (Resampler, MonoMixer, decoder Registry) and
//     the in-memory Buffer
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//   - loader: file path to mono Buffer
//   - selection: pixel range to frame range, inclusive copy
//   - effect: AudioEffect, Speed, Delay, Chain and Parameters
//   - waveform: per-pixel RMS columns and their cache
//   - track: the controller tying selection, parameters and preview together
//
// # Quick Start
//
//	ctl := track.New(track.Geometry{X: 0, Y: 0, Width: 800})
//	ctl.OnChange(func(preview *audio.Buffer) {
//	    // play preview, nil means nothing is selected
//	})
//	if err := ctl.Load(ctx, loader.New(), "loop.wav"); err != nil {
//	    return err
//	}
//
//	ctl.PointerDown(120, 10)
//	ctl.PointerMove(300, 12)
//	ctl.PointerUp(300, 12) // extracts, applies the chain, notifies
//
//	ctl.SetParameter(effect.FieldSpeed, 1.5) // recomputes, notifies again
//
// Everything runs synchronously on the caller's goroutine. track.Previewer
// moves the chain onto a worker when parameter changes arrive faster than
// the chain can keep up.
package wavesel
