// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

// AngleMod changes an angle to be within 0-360 degrees
func AngleMod(a float32) float32 {
	return a - float32(math32.Floor(a/360)*360)
}

// AngleNormalize180 changes an angle to be within -180-180 degrees
func AngleNormalize180(a float32) float32 {
	a = AngleMod(a)
	if a > 180 {
		a -= 360
	}
	return a
}

// AngleDelta returns the signed difference a1 - a2 within -180-180 degrees
func AngleDelta(a1, a2 float32) float32 {
	return AngleNormalize180(a1 - a2)
}

// Angle2Short quantises an angle into the 16 bit network representation.
func Angle2Short(a float32) int32 {
	return int32(a*65536/360) & 65535
}

// Short2Angle is the inverse of Angle2Short.
func Short2Angle(s int32) float32 {
	return float32(s) * (360.0 / 65536)
}
