// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"
)

// setWaterLevel samples the contents at the feet, the waist and the eyes.
func (m *Move) setWaterLevel() {
	ps := m.PS
	m.WaterLevel = 0
	m.WaterType = 0

	point := ps.Origin
	point[2] = ps.Origin[2] + ps.Mins[2] + 1
	cont := m.pointContents(point)
	if cont&cm.MaskWater != 0 {
		sample2 := int32(float32(ps.ViewHeight) - ps.Mins[2])
		sample1 := sample2 / 2

		m.WaterType = cont
		m.WaterLevel = 1
		point[2] = ps.Origin[2] + ps.Mins[2] + float32(sample1)
		cont = m.pointContents(point)
		if cont&cm.MaskWater != 0 {
			m.WaterLevel = 2
			point[2] = ps.Origin[2] + ps.Mins[2] + float32(sample2)
			cont = m.pointContents(point)
			if cont&cm.MaskWater != 0 {
				m.WaterLevel = 3
			}
		}
	}

	ps.Conditions.Underwater = m.WaterLevel > 2
}

// waterEvents generates splashes when entering and leaving water.
func (m *Move) waterEvents(sc *stepContext) {
	ps := m.PS
	switch {
	case sc.previousWaterLevel == 0 && m.WaterLevel != 0:
		m.addEvent(EventWaterTouch)
	case sc.previousWaterLevel != 0 && m.WaterLevel == 0:
		m.addEvent(EventWaterLeave)
	}

	// head going under or coming out
	if sc.previousWaterLevel != 3 && m.WaterLevel == 3 {
		m.addEvent(EventWaterUnder)
	}
	if sc.previousWaterLevel == 3 && m.WaterLevel != 3 {
		var gasp int32
		if m.Ext.AirLeft < 6000 {
			gasp = 1
		}
		ps.AddEvent(EventWaterClear, gasp)
	}
}

// wishVelocity combines the view vectors with the movement input.
func wishVelocity(sc *stepContext, cmd *UserCmd, scale float32) vec.Vec3 {
	fmove := float32(cmd.Forward)
	smove := float32(cmd.Right)
	var v vec.Vec3
	for i := range v {
		v[i] = float32(float32(scale*sc.forward[i])*fmove) + float32(float32(scale*sc.right[i])*smove)
	}
	v[2] += float32(scale * float32(cmd.Up))
	return v
}

func (m *Move) waterMove(sc *stepContext) {
	ps := m.PS
	if m.checkWaterJump(sc) {
		m.waterJumpMove(sc)
		return
	}

	m.friction(sc)

	scale := m.cmdScale(&m.Cmd)
	var wishvel vec.Vec3
	if scale == 0 {
		// sink towards bottom
		wishvel[2] = -60
	} else {
		wishvel = wishVelocity(sc, &m.Cmd, scale)
	}
	wishdir, wishspeed := wishvel.NormalizeLen()

	swim, accel := float32(swimScale), float32(waterAccelerate)
	if m.WaterType&cm.ContentsSlime != 0 {
		swim, accel = slagSwimScale, slagAccelerate
	}
	if max := float32(ps.Speed) * swim; wishspeed > max {
		wishspeed = max
	}
	m.accelerate(sc, wishdir, wishspeed, accel)

	// make sure we can go up slopes easily under water
	if sc.groundPlane && vec.Dot(ps.Velocity, sc.groundTrace.Plane.Normal) < 0 {
		vel := ps.Velocity.Length()
		// slide along the ground plane
		ps.Velocity = clipVelocity(ps.Velocity, sc.groundTrace.Plane.Normal, OverClip)
		ps.Velocity = ps.Velocity.Normalize().Scale(vel)
	}

	m.slideMove(sc, false)
}
