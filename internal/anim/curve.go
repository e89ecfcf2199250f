// SPDX-License-Identifier: Unlicense OR MIT

package anim

import "math"

// captureBreak is the time rate where Capture switches from
// the overshooting sine segment to the quadratic settle.
const captureBreak = 0.4

// Capture is the easing curve of a Tracker. It overshoots to
// about 1.1 at rate 0.4 and settles on 1 at rate 1. The two
// segments meet at rate 0.4.
func Capture(rate float32) float32 {
	r := float64(rate)
	if r <= captureBreak {
		return float32(0.55*math.Sin(8.0564*r-math.Pi/2) + 0.55)
	}
	return float32(4*math.Pow(0.417*r-0.341, 2) - 4*math.Pow(0.417-0.341, 2) + 1)
}

// Overshoot returns a curve that flings past 1 and comes back,
// more so for larger tensions.
func Overshoot(tension float32) func(float32) float32 {
	return func(t float32) float32 {
		t -= 1
		return t*t*((tension+1)*t+tension) + 1
	}
}

// Linear is the identity curve.
func Linear(t float32) float32 {
	return t
}
