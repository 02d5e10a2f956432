// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"
)

func (m *Move) jumpAnim() {
	if m.Cmd.Forward >= 0 {
		m.Anim.add(AnimJump)
		m.PS.Jump.Backwards = false
	} else {
		m.Anim.add(AnimJumpBack)
		m.PS.Jump.Backwards = true
	}
}

// checkJump starts a jump if the player asked for one and is allowed to.
func (m *Move) checkJump(sc *stepContext) bool {
	ps := m.PS
	// no jumping when prone or mounted
	if ps.Posture.Prone || ps.Mount.Mounted() {
		return false
	}
	if m.Cmd.ServerTime-m.Ext.JumpTime < jumpDelay {
		return false
	}
	// don't allow jump until all buttons are up
	if ps.Respawned {
		return false
	}
	if m.Cmd.Up < 10 {
		// not holding jump
		return false
	}
	// must wait for jump to be released
	if ps.Jump.Held {
		// clear upmove so cmdScale doesn't lower running speed
		m.Cmd.Up = 0
		return false
	}

	sc.groundPlane = false
	sc.walking = false
	ps.Jump.Held = true
	ps.GroundEntityNum = cm.EntityNumNone
	ps.Velocity[2] = JumpVelocity
	m.jumpAnim()
	return true
}

// checkWaterJump looks for a ledge to climb out of the water.
func (m *Move) checkWaterJump(sc *stepContext) bool {
	ps := m.PS
	if ps.PMTime != 0 {
		return false
	}
	if m.WaterLevel != 2 {
		return false
	}

	flatforward := sc.forward
	flatforward[2] = 0
	flatforward = flatforward.Normalize()

	spot := vec.MA(ps.Origin, 30, flatforward)
	spot[2] += 4
	if m.pointContents(spot)&cm.ContentsSolid == 0 {
		return false
	}
	spot[2] += 16
	if m.pointContents(spot) != 0 {
		return false
	}

	// jump out of water
	ps.Velocity = sc.forward.Scale(200)
	ps.Velocity[2] = 350
	ps.Timers.WaterJump = true
	ps.PMTime = waterJumpTime
	return true
}

// waterJumpMove flies out of the water without control.
func (m *Move) waterJumpMove(sc *stepContext) {
	ps := m.PS
	m.stepSlideMove(sc, true)

	ps.Velocity[2] -= float32(float32(ps.Gravity) * sc.frametime)
	if ps.Velocity[2] < 0 {
		// cancel as soon as we are falling down again
		ps.Timers = Timers{}
		ps.PMTime = 0
	}
}
