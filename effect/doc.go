// SPDX-License-Identifier: EPL-2.0

// Package effect holds the time-domain transforms applied to a selection
// before preview.
//
// Effects implement AudioEffect and are composed into a Chain, an ordered
// slice that runs each enabled stage in turn. NewChain builds the standard
// order from Parameters:
//
//	Speed (resampling, pitch follows speed) -> Delay (feedback echo)
//
// A disabled stage passes its input through. The chain clones its input
// first, so the caller's buffer is never modified, and every stage
// allocates its own output.
//
//	params, _ := effect.DefaultParameters().With(effect.FieldSpeed, 2)
//	preview := effect.NewChain(params).Apply(selection)
package effect
