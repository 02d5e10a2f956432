// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	gmath "math"
)

// Rint rounds half to even like the x87 default rounding mode.
func Rint(x float32) float32 {
	return float32(gmath.RoundToEven(float64(x)))
}

func Lerp(a, b, frac float32) float32 {
	return a + float32((b-a)*frac)
}
