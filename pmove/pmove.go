// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math"
	"etmove/math/vec"
)

const (
	maxCmdMsec    = 200
	maxCatchUp    = 1000
	chopMsec      = 50
	frameCountMax = 1 << 6
)

// updateConditions publishes the animation conditions of the current state.
func (m *Move) updateConditions() {
	ps := m.PS
	ps.Conditions.Mounted = ps.Mount.Mounted()
	ps.Conditions.Underhand = ps.ViewAngles[vec.PITCH] > 0
	ps.Posture.Crouching = float32(ps.ViewHeight) == ps.CrouchViewHeight
	ps.Conditions.Crouching = ps.Posture.Crouching
	ps.Conditions.Firing = m.Cmd.Buttons&ButtonAttack != 0
	ps.Conditions.Prone = ps.Posture.Prone
	ps.Conditions.ProneMoving = ps.Posture.ProneMoving
}

// prepareCmd applies the input rules that come before any movement.
func (m *Move) prepareCmd() {
	ps := m.PS
	cmd := &m.Cmd

	if ps.Health <= 0 {
		// corpses can fly through bodies
		m.TraceMask &^= cm.ContentsBody
		ps.Zooming = false
	}

	// the walking button is clear when running, against footstep cheats
	if iabs(cmd.Forward) > 64 || iabs(cmd.Right) > 64 {
		cmd.Buttons &^= ButtonWalking
	}

	ps.Talk = cmd.Buttons&ButtonTalk != 0
	ps.Firing = false
	ps.Zooming = false

	if !ps.Respawned && ps.Type != Intermission {
		if cmd.Buttons&ButtonAttack != 0 && cmd.Buttons&ButtonTalk == 0 {
			ps.Firing = true
		}
	}

	if ps.Respawned {
		// wait until attack is released and the weapon switch is done
		if ps.Health > 0 && cmd.Buttons&ButtonAttack == 0 && cmd.WButtons&WButtonAttack2 == 0 &&
			ps.Weapon == cmd.Weapon {
			ps.Respawned = false
		}
	}

	// talking disallows all other input so a proxy can't fake balloons
	if cmd.Buttons&ButtonTalk != 0 {
		cmd.Buttons = ButtonTalk
		cmd.WButtons = 0
		cmd.Forward = 0
		cmd.Right = 0
		cmd.Up = 0
		cmd.DoubleTap = DTNone
	}
}

func (m *Move) dropTimers(sc *stepContext) {
	ps := m.PS
	if ps.PMTime != 0 {
		if sc.msec >= ps.PMTime {
			ps.Timers = Timers{}
			ps.PMTime = 0
		} else {
			ps.PMTime -= sc.msec
		}
	}

	if ps.LegsTimer > 0 {
		ps.LegsTimer -= sc.msec
		if ps.LegsTimer < 0 {
			ps.LegsTimer = 0
		}
	}
	if ps.TorsoTimer > 0 {
		ps.TorsoTimer -= sc.msec
		if ps.TorsoTimer < 0 {
			ps.TorsoTimer = 0
		}
	}
}

// flail tracks whether a dead player is still falling.
func (m *Move) flail() {
	ps := m.PS
	if !ps.Posture.Dead {
		return
	}
	if ps.Flailing {
		if ps.PMTime == 0 {
			// the eagle has landed
			ps.Flailing = false
		}
	} else if ps.PMTime == 0 && !ps.Limbo && ps.GroundEntityNum == cm.EntityNumNone {
		ps.Flailing = true
	}
	ps.Conditions.Flailing = ps.Flailing
}

// snapVelocity rounds the velocity so it survives the network unchanged.
func (m *Move) snapVelocity(sc *stepContext) {
	ps := m.PS
	if !m.Params.FixedPhysics {
		for i := range ps.Velocity {
			ps.Velocity[i] = math.Rint(ps.Velocity[i])
		}
		return
	}

	// halt if not going fast enough (0.5 units/sec)
	if vec.Dot(ps.Velocity, ps.Velocity) < 0.25 {
		ps.Velocity = vec.Vec3{}
		return
	}

	fps := float32(math.Clamp(60, m.Params.FixedPhysicsFPS, 333))
	fac := float32(sc.msec) / (1000 / fps)

	// add some framerate independent error where the velocity changed
	for i := range ps.Velocity {
		d := ps.Velocity[i] - sc.previousVelocity[i]
		if d < 0 {
			d = -d
		}
		if d > 0.5/fac {
			if ps.Velocity[i] < 0 {
				ps.Velocity[i] -= float32(0.5 * fac)
			} else {
				ps.Velocity[i] += float32(0.5 * fac)
			}
		}
	}
	for i := range ps.Velocity {
		ps.Velocity[i] = math.Rint(ps.Velocity[i]*64) / 64
	}
}

// Single runs one movement step for the command in m.Cmd. It returns the
// surface flags of the final ground trace.
func (m *Move) Single() cm.SurfaceFlags {
	ps := m.PS
	m.updateConditions()

	m.numTouch = 0
	m.WaterType = 0
	m.WaterLevel = 0
	m.setPostureBox()

	m.prepareCmd()

	var sc stepContext
	sc.msec = math.Clamp(1, m.Cmd.ServerTime-ps.CommandTime, maxCmdMsec)
	ps.CommandTime = m.Cmd.ServerTime

	// save old org in case we get stuck and old velocity for crashlanding
	sc.previousOrigin = ps.Origin
	sc.previousVelocity = ps.Velocity
	sc.frametime = float32(sc.msec) * 0.001

	if ps.Type != Freeze && !ps.Limbo {
		m.updateViewAngles(&sc)
	}
	sc.forward, sc.right, sc.up = vec.AngleVectors(ps.ViewAngles)

	if m.Cmd.Up < 10 {
		// not holding jump
		ps.Jump.Held = false
	}

	// decide if backpedaling animations should be used
	if m.Cmd.Forward < 0 {
		ps.Jump.BackwardsRun = true
	} else if m.Cmd.Forward > 0 || m.Cmd.Right != 0 {
		ps.Jump.BackwardsRun = false
	}

	if ps.Type >= Dead || ps.Limbo || ps.Timers.LockPlayer {
		m.Cmd.Forward = 0
		m.Cmd.Right = 0
		m.Cmd.Up = 0
	}

	switch ps.Type {
	case Spectator:
		m.checkDuck()
		m.flyMove(&sc)
		m.dropTimers(&sc)
		return sc.groundTrace.SurfaceFlags
	case Noclip:
		m.noclipMove(&sc)
		m.dropTimers(&sc)
		return sc.groundTrace.SurfaceFlags
	case Freeze, Intermission:
		// no movement at all
		return sc.groundTrace.SurfaceFlags
	case Normal:
		if m.Loadout.MortarSet {
			m.Cmd.Forward = 0
			m.Cmd.Right = 0
			m.Cmd.Up = 0
		}
	}

	m.setWaterLevel()
	sc.previousWaterLevel = m.WaterLevel

	if !m.checkProne() {
		m.checkDuck()
	}

	m.groundTrace(&sc)

	if ps.Type == Dead {
		m.deadMove(&sc)
	}

	m.checkLadderMove(&sc)
	m.dropTimers(&sc)

	switch {
	case sc.ladder:
		m.ladderMove(&sc)
	case ps.Timers.WaterJump:
		m.waterJumpMove(&sc)
	case m.WaterLevel > 1:
		// swimming
		m.waterMove(&sc)
	case ps.Mount.Tank:
		ps.Velocity = vec.Vec3{}
		ps.ViewHeight = DefaultViewHeight
	case sc.walking:
		m.walkMove(&sc)
	default:
		m.airMove(&sc)
	}

	m.sprint(&sc)

	// set groundentity, watertype, and waterlevel
	m.groundTrace(&sc)
	m.setWaterLevel()

	m.flail()
	m.waterEvents(&sc)
	m.snapVelocity(&sc)

	return sc.groundTrace.SurfaceFlags
}

// Run moves the player up to m.Cmd.ServerTime. Long commands are cut into
// pieces so the outcome doesn't depend on the frame rate. A dead player
// sliding on monster slick ground gets the surface flags returned so the
// game can keep the corpse moving.
func (m *Move) Run() cm.SurfaceFlags {
	ps := m.PS
	finalTime := m.Cmd.ServerTime
	gravity := ps.Gravity

	if finalTime < ps.CommandTime {
		// should not happen
		return 0
	}
	if finalTime > ps.CommandTime+maxCatchUp {
		ps.CommandTime = finalTime - maxCatchUp
	}

	ps.PmoveFrameCount = (ps.PmoveFrameCount + 1) & (frameCountMax - 1)
	m.Anim.Reset()

	var surf cm.SurfaceFlags
	for ps.CommandTime != finalTime {
		msec := finalTime - ps.CommandTime
		limit := int32(chopMsec)
		if m.Params.Fixed && m.Params.FixedMsec > 0 {
			limit = m.Params.FixedMsec
		}
		if msec > limit {
			msec = limit
		}
		m.Cmd.ServerTime = ps.CommandTime + msec
		ps.Gravity = gravity

		surf = m.Single()

		if ps.Jump.Held {
			m.Cmd.Up = 20
		}
	}

	if (ps.Health <= 0 || ps.Type == Dead) && surf&cm.SurfMonsterSlick != 0 {
		return surf
	}
	return 0
}

// Extrapolate moves the player along its velocity without input. The game
// uses it to smooth players whose commands are late.
func (m *Move) Extrapolate(frametime float32) {
	var sc stepContext
	sc.frametime = frametime
	m.setPostureBox()
	m.groundTrace(&sc)

	// no gravity on the ground or on a ladder
	if sc.groundPlane || m.PS.Ladder {
		m.stepSlideMove(&sc, false)
	} else {
		m.stepSlideMove(&sc, true)
	}
}
