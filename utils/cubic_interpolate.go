// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the audio stages.
package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at fractional position x in [0, 1] between y1 and y2.
// x = 0 returns y1 exactly and x = 1 returns y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
