// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"

	"github.com/chewxy/math32"
)

var (
	legsMins = vec.Vec3{-13.5, -13.5, -24}
	legsMaxs = vec.Vec3{13.5, 13.5, -14.4}
	// more than just the head: arms and weapon stick out as well
	headMins = vec.Vec3{-18, -18, -2}
	headMaxs = vec.Vec3{18, 18, 10}
)

const (
	legsOffset = 32
	headOffset = 36
)

func flatForward(viewangles vec.Vec3) vec.Vec3 {
	s, c := math32.Sincos(viewangles[vec.YAW] * (math32.Pi / 180))
	return vec.Vec3{c, s, 0}
}

// traceLegs traces the legs box which sits behind a prone player and ahead
// of a corpse. If the legs clip sooner than body they get a second try one
// step higher. A non nil offset receives the height the legs had to be
// raised.
func (m *Move) traceLegs(offset *float32, start, end vec.Vec3, body *cm.Trace, viewangles vec.Vec3) cm.Trace {
	// players don't block legs
	mask := m.TraceMask &^ (cm.ContentsBody | cm.ContentsCorpse)

	if offset != nil {
		*offset = 0
	}

	ofs := flatForward(viewangles)
	if m.PS.Posture.Prone {
		ofs = ofs.Scale(-legsOffset)
	} else {
		ofs = ofs.Scale(legsOffset)
	}

	t := m.trace(vec.Add(start, ofs), legsMins, legsMaxs, vec.Add(end, ofs), mask)
	if body != nil && t.Fraction >= body.Fraction && !t.AllSolid {
		return t
	}

	ofs[2] += StepSize
	org := vec.Add(start, ofs)
	st := m.trace(org, legsMins, legsMaxs, vec.Add(end, ofs), mask)
	if st.AllSolid || st.StartSolid || st.Fraction <= t.Fraction {
		return t
	}
	// the step trace did better
	t = st

	if offset != nil {
		*offset = ofs[2]
		org = st.EndPos
		point := org
		point[2] -= StepSize
		down := m.trace(org, legsMins, legsMaxs, point, mask)
		if !down.AllSolid {
			*offset = ofs[2] - (org[2] - down.EndPos[2])
		}
	}
	return t
}

// traceHead sweeps the head box. The offset is only applied to the end
// point.
func (m *Move) traceHead(start, end vec.Vec3, viewangles vec.Vec3) cm.Trace {
	mask := m.TraceMask &^ (cm.ContentsBody | cm.ContentsCorpse)

	ofs := flatForward(viewangles)
	if m.PS.Posture.Prone {
		ofs = ofs.Scale(headOffset)
	} else {
		ofs = ofs.Scale(-headOffset)
	}
	return m.trace(start, headMins, headMaxs, vec.Add(end, ofs), mask)
}

// traceAllParts traces the body box and, for prone and dead players, the
// legs and head as well. The worst of them is returned with the end point
// recomputed along the original move.
func (m *Move) traceAllParts(offset *float32, start, end vec.Vec3) cm.Trace {
	t := m.trace(start, m.Mins, m.Maxs, end, m.TraceMask)
	if !m.PS.Posture.Prone && !m.PS.Posture.Dead {
		return t
	}

	adjust := false
	worse := func(o cm.Trace) bool {
		return o.Fraction < t.Fraction || o.StartSolid || o.AllSolid
	}

	legs := m.traceLegs(offset, start, end, &t, m.PS.ViewAngles)
	if worse(legs) {
		t = legs
		adjust = true
	}

	head := m.traceHead(start, end, m.PS.ViewAngles)
	if worse(head) {
		t = head
		adjust = true
	}

	if adjust {
		t.EndPos = vec.MA(start, t.Fraction, vec.Sub(end, start))
	}
	return t
}

func (m *Move) traceAll(start, end vec.Vec3) cm.Trace {
	return m.traceAllParts(nil, start, end)
}
