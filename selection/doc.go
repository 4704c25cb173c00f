// SPDX-License-Identifier: EPL-2.0

// Package selection maps a horizontal pixel range on a track to a frame
// range of the loaded buffer and copies that range out.
//
// A pixel x maps to frame
//
//	floor((x - originX) * frames / width)
//
// and the copied range is inclusive on both ends, so pixels [10, 50] on a
// 100 pixel track over 100 frames yield 41 frames.
package selection
