// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"

	"github.com/chewxy/math32"
)

func iabs(x int8) int32 {
	if x < 0 {
		return -int32(x)
	}
	return int32(x)
}

// cmdScale returns the scale factor to apply to cmd movements. It allows the
// clients to use axial -127 to 127 values for all directions without getting
// a sqrt(2) distortion in speed.
func (m *Move) cmdScale(cmd *UserCmd) float32 {
	max := iabs(cmd.Forward)
	if r := iabs(cmd.Right); r > max {
		max = r
	}
	if u := iabs(cmd.Up); u > max {
		max = u
	}
	if max == 0 {
		return 0
	}

	f, r, u := int32(cmd.Forward), int32(cmd.Right), int32(cmd.Up)
	total := math32.Sqrt(float32(f*f + r*r + u*u))
	scale := float32(m.PS.Speed) * float32(max) / (127 * total)

	if cmd.Buttons&ButtonSprint != 0 && m.Ext.SprintTime > 50 {
		scale *= m.PS.SprintSpeedScale
	} else {
		scale *= m.PS.RunSpeedScale
	}

	if m.PS.Type == Noclip {
		scale *= 3
	}

	lo := &m.Loadout
	if lo.Heavy && !lo.MortarSet {
		switch {
		case lo.Flamethrower:
			if !lo.HeavySkill || cmd.Buttons&ButtonAttack != 0 {
				scale *= 0.7
			}
		case lo.HeavySkill:
			scale *= 0.75
		default:
			scale *= 0.5
		}
	}
	if lo.SpeedScale != 0 {
		scale *= lo.SpeedScale
	}
	return scale
}

// friction handles both ground friction and water friction.
func (m *Move) friction(sc *stepContext) {
	ps := m.PS
	v := ps.Velocity
	if sc.walking {
		// ignore slope movement
		v[2] = 0
	}

	speed := v.Length()
	if speed < 1 && ps.Type != Spectator && ps.Type != Noclip {
		// allow sinking underwater
		ps.Velocity[0] = 0
		ps.Velocity[1] = 0
		return
	}

	drop := float32(0)
	if m.WaterLevel <= 1 {
		if sc.walking && sc.groundTrace.SurfaceFlags&cm.SurfSlick == 0 && !ps.Timers.Knockback {
			control := speed
			if control < stopSpeed {
				control = stopSpeed
			}
			drop += float32(control * groundFriction * sc.frametime)
		}
	}

	if m.WaterLevel != 0 {
		wl := float32(m.WaterLevel)
		if m.WaterType&cm.ContentsSlime != 0 {
			drop += float32(speed * slagFriction * wl * sc.frametime)
		} else {
			drop += float32(speed * waterFriction * wl * sc.frametime)
		}
	}

	if ps.Type == Spectator {
		drop += float32(speed * spectatorFriction * sc.frametime)
	}

	// no ladder strafing
	if sc.ladder {
		drop += float32(speed * ladderFriction * sc.frametime)
	}

	newspeed := speed - drop
	if newspeed < 0 {
		newspeed = 0
	}
	newspeed /= speed

	if ps.Type == Spectator || ps.Type == Noclip {
		if drop < 1 && speed < 3 {
			newspeed = 0
		}
	}

	ps.Velocity = ps.Velocity.Scale(newspeed)
}

// accelerate adds the part of the wished velocity the player does not
// already have.
func (m *Move) accelerate(sc *stepContext, wishdir vec.Vec3, wishspeed, accel float32) {
	ps := m.PS
	currentspeed := vec.Dot(ps.Velocity, wishdir)
	addspeed := wishspeed - currentspeed
	if addspeed <= 0 {
		return
	}
	accelspeed := float32(accel*sc.frametime) * wishspeed
	if accelspeed > addspeed {
		accelspeed = addspeed
	}

	// bots carry their own friction coefficient
	if ps.GroundEntityNum != cm.EntityNumNone && ps.Friction != 0 {
		accelspeed *= 1 / ps.Friction
	}
	if accelspeed > addspeed {
		accelspeed = addspeed
	}

	ps.Velocity = vec.MA(ps.Velocity, accelspeed, wishdir)
}
