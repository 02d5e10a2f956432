// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"etmove/math/vec"
)

type Plane struct {
	Normal vec.Vec3
	Dist   float32
}

// Trace is the result of sweeping a box from a start to an end point.
// A trace that never left solid has AllSolid set, Fraction 0 and
// EndPos at the start.
type Trace struct {
	AllSolid     bool
	StartSolid   bool
	Fraction     float32
	EndPos       vec.Vec3
	Plane        Plane
	SurfaceFlags SurfaceFlags
	Contents     Contents
	EntityNum    int
}

// Hit reports whether the trace was stopped by anything.
func (t *Trace) Hit() bool {
	return t.Fraction < 1 || t.StartSolid
}
