// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements device independent units.

Device independent pixel, or dp, is the unit for sizes independent of
the underlying display device. Pixels, or px, is the unit for display
dependent pixels. Their size vary between platforms and displays.

To keep gesture thresholds constant across displays, define them in
dps and convert to pixels with the Metric of the display at hand.

*/
package unit

import (
	"fmt"
	"math"
)

// Metric converts Values to device-dependent pixels, px. The zero
// value represents a 1-to-1 scale from dp to px.
type Metric struct {
	// PxPerDp is the device-dependent pixels per dp.
	PxPerDp float32
}

type (
	// Dp represents device independent pixels. 1 dp will
	// have the same apparent size across platforms and
	// display resolutions.
	Dp float32
)

// Dp converts v to pixels, rounded to the nearest integer value.
func (c Metric) Dp(v Dp) int {
	return int(math.Round(float64(nonZero(c.PxPerDp)) * float64(v)))
}

// DpF converts v to fractional pixels.
func (c Metric) DpF(v Dp) float32 {
	return nonZero(c.PxPerDp) * float32(v)
}

// PxToDp converts v px to dp.
func (c Metric) PxToDp(v int) Dp {
	return Dp(float32(v) / nonZero(c.PxPerDp))
}

func (v Dp) String() string {
	return fmt.Sprintf("%gdp", float32(v))
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}
