// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"

	"github.com/chewxy/math32"
)

type Footstep int32

const (
	FootstepNormal Footstep = iota
	FootstepMetal
	FootstepWood
	FootstepGrass
	FootstepGravel
	FootstepSplash
	FootstepRoof
	FootstepSnow
	FootstepCarpet
	FootstepTotal
)

// FootstepForSurface returns the footstep sound kind of a surface.
func FootstepForSurface(s cm.SurfaceFlags) Footstep {
	switch {
	case s&cm.SurfNoSteps != 0:
		return FootstepTotal
	case s&cm.SurfMetal != 0:
		return FootstepMetal
	case s&cm.SurfWood != 0:
		return FootstepWood
	case s&cm.SurfGrass != 0:
		return FootstepGrass
	case s&cm.SurfGravel != 0:
		return FootstepGravel
	case s&cm.SurfRoof != 0:
		return FootstepRoof
	case s&cm.SurfSnow != 0:
		return FootstepSnow
	case s&cm.SurfCarpet != 0:
		return FootstepCarpet
	case s&cm.SurfSplash != 0:
		return FootstepSplash
	}
	return FootstepNormal
}

// crashLand checks for hard landings that generate sound events.
func (m *Move) crashLand(sc *stepContext) {
	ps := m.PS
	// only play this if coming down hard
	if ps.LegsTimer == 0 && sc.previousVelocity[2] < -220 {
		m.Anim.add(AnimLand)
	}

	// calculate the exact velocity on landing
	dist := ps.Origin[2] - sc.previousOrigin[2]
	vel := sc.previousVelocity[2]
	acc := -float32(ps.Gravity)

	a := acc / 2
	b := vel
	c := -dist

	den := float32(b*b) - float32(4*a*c)
	if den < 0 {
		return
	}
	t := (-b - math32.Sqrt(den)) / (2 * a)

	delta := vel + float32(t*acc)
	delta = float32(delta*delta) * 0.0001

	switch m.WaterLevel {
	case 3:
		// never take falling damage if completely underwater
		return
	case 2:
		delta *= 0.25
	case 1:
		delta *= 0.5
	}

	if delta < 1 {
		return
	}

	// bounce pads never hurt or crunch
	if sc.groundTrace.SurfaceFlags&cm.SurfNoDamage == 0 && !m.Predict {
		m.debugf(1, "delta: %5.2f\n", delta)
		parm := int32(FootstepForSurface(sc.groundTrace.SurfaceFlags))
		alive := ps.Health > 0
		switch {
		case delta > 77:
			ps.AddEvent(EventFallNDie, parm)
		case delta > 67:
			ps.AddEvent(EventFallDmg50, parm)
		case delta > 58:
			// pain grunts are not played for the dead
			if alive {
				ps.AddEvent(EventFallDmg25, parm)
			}
		case delta > 48:
			if alive {
				ps.AddEvent(EventFallDmg15, parm)
			}
		case delta > 38.75:
			if alive {
				ps.AddEvent(EventFallDmg10, parm)
			}
		case delta > 7:
			ps.AddEvent(EventFallShort, parm)
		default:
			ps.AddEvent(EventFootstep, parm)
		}
	}

	// falling damage clears the velocity here so prediction agrees
	if delta > 38.75 {
		ps.Velocity = vec.Vec3{}
	}
}

// correctAllSolid jitters the player around to find a free spot.
func (m *Move) correctAllSolid(sc *stepContext) (cm.Trace, bool) {
	ps := m.PS
	m.debugf(1, "allsolid\n")

	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				point := ps.Origin
				point[0] += float32(i)
				point[1] += float32(j)
				point[2] += float32(k)
				if t := m.traceAll(point, point); !t.AllSolid {
					point = ps.Origin
					point[2] -= 0.25
					t = m.traceAll(ps.Origin, point)
					sc.groundTrace = t
					return t, true
				}
			}
		}
	}

	ps.GroundEntityNum = cm.EntityNumNone
	sc.groundPlane = false
	sc.walking = false
	return cm.Trace{}, false
}

// groundTraceMissed handles the transition into free fall.
func (m *Move) groundTraceMissed(sc *stepContext) {
	ps := m.PS
	if ps.GroundEntityNum != cm.EntityNumNone {
		m.debugf(1, "lift\n")
		// force the jump animation if the ground is a ways away, or
		// players would backflip down staircases
		point := ps.Origin
		point[2] -= 64
		if m.traceAll(ps.Origin, point).Fraction == 1 {
			m.jumpAnim()
		}
	}
	ps.GroundEntityNum = cm.EntityNumNone
	sc.groundPlane = false
	sc.walking = false
}

// groundTrace finds what the player stands on.
func (m *Move) groundTrace(sc *stepContext) {
	ps := m.PS
	point := ps.Origin
	if ps.Mount.MG42 || ps.Mount.AAGun {
		point[2] -= 1
	} else {
		point[2] -= 0.25
	}

	t := m.traceAllParts(&m.Ext.ProneLegsOffset, ps.Origin, point)
	sc.groundTrace = t

	// do something corrective if the trace starts in a solid
	if t.AllSolid && !ps.Mount.Tank {
		var ok bool
		if t, ok = m.correctAllSolid(sc); !ok {
			return
		}
	}

	// if the trace didn't hit anything, we are in free fall
	if t.Fraction == 1 {
		m.groundTraceMissed(sc)
		return
	}

	// check if getting thrown off the ground
	if ps.Velocity[2] > 0 && vec.Dot(ps.Velocity, t.Plane.Normal) > 10 && !ps.Posture.Prone {
		m.debugf(1, "kickoff\n")
		// go into jump animation but not under water
		if m.WaterLevel < 3 {
			m.jumpAnim()
		}
		ps.GroundEntityNum = cm.EntityNumNone
		sc.groundPlane = false
		sc.walking = false
		return
	}

	// slopes that are too steep will not be considered onground
	if t.Plane.Normal[2] < MinWalkNormal {
		m.debugf(1, "steep\n")
		ps.GroundEntityNum = cm.EntityNumNone
		sc.groundPlane = true
		sc.walking = false
		return
	}

	sc.groundPlane = true
	sc.walking = true

	// hitting solid ground will end a waterjump
	if ps.Timers.WaterJump {
		ps.Timers.WaterJump = false
		ps.Timers.Land = false
		ps.PMTime = 0
	}

	if ps.GroundEntityNum == cm.EntityNumNone {
		// just hit the ground
		m.debugf(1, "land\n")
		m.crashLand(sc)

		// don't do landing time if we were just going down a slope
		if sc.previousVelocity[2] < -200 {
			// don't allow another jump for a little while
			ps.Timers.Land = true
			ps.PMTime = landTime
		}
	}

	ps.GroundEntityNum = t.EntityNum
	m.addTouch(t.EntityNum)
}
