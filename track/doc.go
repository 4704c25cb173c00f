// SPDX-License-Identifier: EPL-2.0

// Package track implements the controller behind one waveform track: it
// owns the loaded buffer, turns pointer drags on the header row into a
// selection, runs the effect chain whenever the selection or a chain
// parameter changes, and hands each result to a single observer.
//
// Selection state:
//
//	Idle      --down in header-->       Selecting
//	Selecting --move-->                 Selecting
//	Selecting --up, end <= start-->     Idle      (observer gets nil)
//	Selecting --up, end > start-->      Selected  (observer gets preview)
//	Selected  --down in header-->       Selecting
//
// Pointer events below the header row go to the registered Controls.
//
// A Controller is driven from one goroutine, normally the UI event loop.
// With WithAsyncPreview the chain runs on a worker instead and the observer
// is called from that worker.
package track
