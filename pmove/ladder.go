// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"
)

const ladderTraceDist = 48

// checkLadderMove looks for a ladder in front of the player.
func (m *Move) checkLadderMove(sc *stepContext) {
	ps := m.PS
	if ps.PMTime != 0 {
		return
	}

	tracedist := float32(ladderTraceDist)
	if sc.walking {
		tracedist = 1
	}

	wasOnLadder := ps.Ladder
	sc.ladder = false
	sc.ladderForward = false
	ps.Ladder = false

	if ps.Health <= 0 {
		ps.GroundEntityNum = cm.EntityNumNone
		sc.groundPlane = false
		sc.walking = false
		return
	}

	// can't climb ladders while prone
	if ps.Posture.Prone {
		return
	}

	flatforward := sc.forward
	flatforward[2] = 0
	flatforward = flatforward.Normalize()

	spot := vec.MA(ps.Origin, tracedist, flatforward)
	t := m.trace(ps.Origin, m.Mins, m.Maxs, spot, m.TraceMask)
	if t.Fraction < 1 && t.SurfaceFlags&cm.SurfLadder != 0 {
		sc.ladder = true
		sc.ladderVec = t.Plane.Normal
	}

	if sc.ladder && !sc.walking && t.Fraction*tracedist > 1 {
		// only just on the ladder, pull in towards it without
		// throwing us back off
		sc.ladder = false
		mins := m.Mins
		mins[2] = -1
		spot = vec.MA(ps.Origin, -tracedist, sc.ladderVec)
		t = m.trace(ps.Origin, mins, m.Maxs, spot, m.TraceMask)
		if t.Fraction < 1 && t.SurfaceFlags&cm.SurfLadder != 0 {
			sc.ladderForward = true
			sc.ladder = true
			ps.Ladder = true
		}
	} else if sc.ladder {
		ps.Ladder = true
	}

	// on the ground only pushing forward climbs
	if sc.ladder && sc.walking && m.Cmd.Forward <= 0 {
		sc.ladder = false
	}

	if !sc.ladder && wasOnLadder && ps.Velocity[2] > 0 {
		m.Anim.add(AnimClimbDismount)
	}
	// mounting only animates going down
	if sc.ladder && !wasOnLadder && ps.Velocity[2] < 0 {
		m.Anim.add(AnimClimbMount)
	}
}

// ladderMove climbs depending on the view: looking ahead goes up, looking
// down far enough goes down and backpedalling reverses both.
func (m *Move) ladderMove(sc *stepContext) {
	ps := m.PS
	if sc.ladderForward {
		// move towards the ladder
		wishvel := sc.ladderVec.Scale(-200)
		ps.Velocity[0] = wishvel[0]
		ps.Velocity[1] = wishvel[1]
	}

	upscale := (sc.forward[2] + 0.5) * 2.5
	if upscale > 1 {
		upscale = 1
	} else if upscale < -1 {
		upscale = -1
	}

	sc.flatten()

	scale := m.cmdScale(&m.Cmd)
	var wishvel vec.Vec3
	if m.Cmd.Forward != 0 {
		wishvel[2] = 0.9 * upscale * scale * float32(m.Cmd.Forward)
	}
	if m.Cmd.Right != 0 {
		// strafe, so we can jump off ladder
		_, ladderRight, _ := vec.AngleVectors(vec.ToAngles(sc.ladderVec))
		// looking away from the ladder reverses right
		if vec.Dot(sc.ladderVec, sc.forward) < 0 {
			ladderRight = ladderRight.Scale(-1)
		}
		wishvel = vec.MA(wishvel, 0.5*scale*float32(m.Cmd.Right), ladderRight)
	}

	// strafe friction
	m.friction(sc)
	if ps.Velocity[0] < 1 && ps.Velocity[0] > -1 {
		ps.Velocity[0] = 0
	}
	if ps.Velocity[1] < 1 && ps.Velocity[1] > -1 {
		ps.Velocity[1] = 0
	}

	wishdir, wishspeed := wishvel.NormalizeLen()
	m.accelerate(sc, wishdir, wishspeed, ladderAccelerate)

	if wishvel[2] == 0 {
		g := float32(float32(ps.Gravity) * sc.frametime)
		if ps.Velocity[2] > 0 {
			ps.Velocity[2] -= g
			if ps.Velocity[2] < 0 {
				ps.Velocity[2] = 0
			}
		} else {
			ps.Velocity[2] += g
			if ps.Velocity[2] > 0 {
				ps.Velocity[2] = 0
			}
		}
	}

	// no gravity while going up ladder
	m.stepSlideMove(sc, false)

	// always point legs forward
	ps.MovementDir = 0
}
