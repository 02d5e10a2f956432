// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/math/vec"
)

// corpses use a square box so wounded players don't clip into solids
var deadSquareMaxs = vec.Vec3{18, 18, 16}

// stepSlideMove is slideMove with the ability to walk up stairs.
func (m *Move) stepSlideMove(sc *stepContext, gravity bool) {
	ps := m.PS
	start_o := ps.Origin
	start_v := ps.Velocity

	if m.DebugLevel > 0 {
		wassolid := m.traceAll(ps.Origin, ps.Origin).AllSolid
		res := m.slideMove(sc, gravity)
		if m.traceAll(ps.Origin, ps.Origin).AllSolid && !wassolid {
			m.debugf(1, "slideMove solidified! (%v %v %v) -> (%v %v %v)\n",
				start_o[0], start_o[1], start_o[2],
				ps.Origin[0], ps.Origin[1], ps.Origin[2])
		}
		if !res.Clipped() {
			return
		}
	} else if !m.slideMove(sc, gravity).Clipped() {
		// we got exactly where we wanted to go first try
		return
	}

	m.debugf(1, "stepping\n")

	down := start_o
	down[2] -= StepSize
	t := m.traceAll(start_o, down)
	// never step up when you still have up velocity
	if ps.Velocity[2] > 0 && (t.Fraction == 1 || vec.Dot(t.Plane.Normal, vec.Vec3{0, 0, 1}) < MinWalkNormal) {
		m.debugf(1, "up velocity can't step\n")
		return
	}

	down_o := ps.Origin
	down_v := ps.Velocity

	up := start_o
	up[2] += StepSize

	// test the player position if they were a stepheight higher
	if m.traceAll(up, up).AllSolid {
		m.debugf(1, "bend can't step\n")
		return
	}

	// try slidemove from this position
	ps.Origin = up
	ps.Velocity = start_v
	m.slideMove(sc, gravity)

	// push down the final amount
	down = ps.Origin
	down[2] -= StepSize

	// legs and head have to fit as well
	if ps.Posture.Prone {
		if m.traceLegs(nil, ps.Origin, down, nil, ps.ViewAngles).Fraction < 1 {
			ps.Origin = down_o
			ps.Velocity = down_v
			m.debugf(1, "legs unsteppable\n")
			return
		}
		if m.traceHead(ps.Origin, down, ps.ViewAngles).Fraction < 1 {
			ps.Origin = down_o
			ps.Velocity = down_v
			m.debugf(1, "head unsteppable\n")
			return
		}
	}

	maxs := m.Maxs
	if ps.Posture.Dead {
		maxs = deadSquareMaxs
	}
	t = m.trace(ps.Origin, m.Mins, maxs, down, m.TraceMask)
	if !t.AllSolid {
		ps.Origin = t.EndPos
	}
	if t.Fraction < 1 {
		ps.Velocity = clipVelocity(ps.Velocity, t.Plane.Normal, OverClip)
	}

	if delta := ps.Origin[2] - start_o[2]; delta > 2 {
		m.addEvent(stepEvent(delta))
	}
	m.debugf(1, "stepped\n")
}
