// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math"
	"etmove/math/vec"
)

// flatten drops the vertical part of the view vectors.
func (sc *stepContext) flatten() {
	sc.forward[2] = 0
	sc.right[2] = 0
	sc.forward = sc.forward.Normalize()
	sc.right = sc.right.Normalize()
}

func horizontalWish(sc *stepContext, cmd *UserCmd) vec.Vec3 {
	fmove := float32(cmd.Forward)
	smove := float32(cmd.Right)
	var v vec.Vec3
	for i := range v {
		v[i] = float32(sc.forward[i]*fmove) + float32(sc.right[i]*smove)
	}
	return v
}

// setMovementDir decides how far the legs turn away from the view to
// follow the actual direction of movement.
func (m *Move) setMovementDir(sc *stepContext) {
	ps := m.PS
	moved := vec.Sub(ps.Origin, sc.previousOrigin)
	speed := moved.Length()

	// slower than 5 units per frame just faces head angles
	if (m.Cmd.Forward == 0 && m.Cmd.Right == 0) || ps.GroundEntityNum == cm.EntityNumNone ||
		speed == 0 || speed <= sc.frametime*5 {
		ps.MovementDir = 0
		return
	}

	dir := vec.ToAngles(moved.Normalize())
	moveyaw := int32(math.AngleDelta(dir[vec.YAW], ps.ViewAngles[vec.YAW]))
	if m.Cmd.Forward < 0 {
		moveyaw = int32(math.AngleNormalize180(float32(moveyaw + 180)))
	}
	ps.MovementDir = int8(math.Clamp(-75, moveyaw, 75))
}

func (m *Move) airMove(sc *stepContext) {
	ps := m.PS
	m.friction(sc)

	cmd := m.Cmd
	scale := m.cmdScale(&cmd)

	sc.flatten()
	wishvel := horizontalWish(sc, &m.Cmd)
	wishvel[2] = 0

	wishdir, wishspeed := wishvel.NormalizeLen()
	wishspeed *= scale

	// not on ground, so little effect on velocity
	m.accelerate(sc, wishdir, wishspeed, airAccelerate)

	// slide along a steep ground plane even without a ground entity
	if sc.groundPlane {
		ps.Velocity = clipVelocity(ps.Velocity, sc.groundTrace.Plane.Normal, OverClip)
	}

	m.stepSlideMove(sc, true)
	m.setMovementDir(sc)
}

func (m *Move) walkMove(sc *stepContext) {
	ps := m.PS
	if m.WaterLevel > 2 && vec.Dot(sc.forward, sc.groundTrace.Plane.Normal) > 0 {
		// begin swimming
		m.waterMove(sc)
		return
	}

	if m.checkJump(sc) {
		// jumped away
		if m.WaterLevel > 1 {
			m.waterMove(sc)
		} else {
			m.airMove(sc)
		}

		if m.Cmd.ServerTime-m.Ext.JumpTime >= jumpDelay {
			m.Ext.JumpTime = m.Cmd.ServerTime
			m.Ext.SprintTime -= 2500
			if m.Ext.SprintTime < 0 {
				m.Ext.SprintTime = 0
			}
		}
		ps.JumpTime = m.Cmd.ServerTime
		return
	}

	m.friction(sc)

	cmd := m.Cmd
	scale := m.cmdScale(&cmd)

	// project moves down to flat plane, then onto the ground plane
	normal := sc.groundTrace.Plane.Normal
	sc.forward[2] = 0
	sc.right[2] = 0
	sc.forward = clipVelocity(sc.forward, normal, OverClip).Normalize()
	sc.right = clipVelocity(sc.right, normal, OverClip).Normalize()

	// going up or down slopes the wish velocity keeps its z
	wishvel := horizontalWish(sc, &m.Cmd)
	wishdir, wishspeed := wishvel.NormalizeLen()
	wishspeed *= scale

	speed := float32(ps.Speed)
	if ps.Posture.Prone {
		if max := speed * proneSpeed; wishspeed > max {
			// reloading crawls even slower
			if m.Loadout.Reloading && wishspeed >= 40 {
				wishspeed = 40
			} else {
				wishspeed = max
			}
		}
	} else if ps.Posture.Ducked {
		if max := speed * ps.CrouchSpeedScale; wishspeed > max {
			wishspeed = max
		}
	}

	// clamp the speed lower if wading or walking on the bottom
	if m.WaterLevel != 0 {
		waterScale := float32(m.WaterLevel) / 3
		if m.WaterType&cm.ContentsSlime != 0 {
			waterScale = 1 - float32((1-slagSwimScale)*waterScale)
		} else {
			waterScale = 1 - float32((1-swimScale)*waterScale)
		}
		if max := speed * waterScale; wishspeed > max {
			wishspeed = max
		}
	}

	// a hit player temporarily loses full control
	slippery := sc.groundTrace.SurfaceFlags&cm.SurfSlick != 0 || ps.Timers.Knockback
	accel := float32(groundAccelerate)
	if slippery {
		accel = airAccelerate
	}
	m.accelerate(sc, wishdir, wishspeed, accel)

	if slippery {
		ps.Velocity[2] -= float32(float32(ps.Gravity) * sc.frametime)
	}

	// show breath when standing on snow
	ps.Breath = sc.groundTrace.SurfaceFlags&cm.SurfSnow != 0

	vel := ps.Velocity.Length()

	// slide along the ground plane
	ps.Velocity = clipVelocity(ps.Velocity, normal, OverClip)

	// don't do anything if standing still
	if ps.Velocity[0] == 0 && ps.Velocity[1] == 0 {
		return
	}

	// don't decrease velocity when going up or down a slope
	ps.Velocity = ps.Velocity.Normalize().Scale(vel)

	m.stepSlideMove(sc, false)
	m.setMovementDir(sc)
}

// deadMove applies extra friction to a corpse on the ground.
func (m *Move) deadMove(sc *stepContext) {
	ps := m.PS
	if !sc.walking {
		return
	}
	forward := ps.Velocity.Length() - 20
	if forward <= 0 {
		ps.Velocity = vec.Vec3{}
	} else {
		ps.Velocity = ps.Velocity.Normalize().Scale(forward)
	}
}

// flyMove is the spectator movement.
func (m *Move) flyMove(sc *stepContext) {
	m.friction(sc)

	scale := m.cmdScale(&m.Cmd)
	// spectator boost
	if m.Cmd.Buttons&ButtonSprint != 0 {
		scale *= 2
	}

	var wishvel vec.Vec3
	if scale != 0 {
		wishvel = wishVelocity(sc, &m.Cmd, scale)
	}
	wishdir, wishspeed := wishvel.NormalizeLen()

	m.accelerate(sc, wishdir, wishspeed, flyAccelerate)
	m.stepSlideMove(sc, false)
}

func (m *Move) noclipMove(sc *stepContext) {
	ps := m.PS
	ps.ViewHeight = DefaultViewHeight

	speed := ps.Velocity.Length()
	if speed < 1 {
		ps.Velocity = vec.Vec3{}
	} else {
		// extra friction
		control := speed
		if control < stopSpeed {
			control = stopSpeed
		}
		drop := float32(control * groundFriction * 1.5 * sc.frametime)
		newspeed := speed - drop
		if newspeed < 0 {
			newspeed = 0
		}
		newspeed /= speed
		ps.Velocity = ps.Velocity.Scale(newspeed)
	}

	scale := m.cmdScale(&m.Cmd)
	wishvel := horizontalWish(sc, &m.Cmd)
	wishvel[2] += float32(m.Cmd.Up)

	wishdir, wishspeed := wishvel.NormalizeLen()
	wishspeed *= scale

	m.accelerate(sc, wishdir, wishspeed, groundAccelerate)

	ps.Origin = vec.MA(ps.Origin, sc.frametime, ps.Velocity)
}
