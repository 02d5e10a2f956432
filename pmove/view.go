// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/math"
	"etmove/math/vec"
)

const (
	pitchClamp    = 16000
	mortarTurn    = 60
	mortarYawArc  = 30
	mortarPitchUp = 20
	mortarPitchDn = 30
	proneMGArc    = 20
	pronePitch    = 40
	proneMGPitch  = 20
)

// resetDelta makes the current view angle the one the command produces.
func (m *Move) resetDelta(i int) {
	m.PS.DeltaAngles[i] = math.Angle2Short(m.PS.ViewAngles[i]) - m.Cmd.Angles[i]
}

// turnLimit keeps the view angle i within rate degrees per second of old.
func (m *Move) turnLimit(sc *stepContext, i int, old, rate float32) {
	ps := m.PS
	a := ps.ViewAngles[i]
	if a-old > 180 {
		a -= 360
	}
	if a-old < -180 {
		a += 360
	}
	step := rate * sc.frametime
	switch {
	case a > old && a-old > step:
		ps.ViewAngles[i] = old + step
		m.resetDelta(i)
	case old > a && old-a > step:
		ps.ViewAngles[i] = old - step
		m.resetDelta(i)
	}
}

// arcLimit keeps the view angle i within [-below, above] of center.
func (m *Move) arcLimit(i int, center, above, below float32) {
	ps := m.PS
	diff := ps.ViewAngles[i] - center
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	switch {
	case diff > above:
		ps.ViewAngles[i] = math.AngleNormalize180(center + above)
		m.resetDelta(i)
	case diff < -below:
		ps.ViewAngles[i] = math.AngleNormalize180(center - below)
		m.resetDelta(i)
	}
}

// updateViewAngles applies the command angles to the view.
func (m *Move) updateViewAngles(sc *stepContext) {
	ps := m.PS
	cmd := &m.Cmd

	if ps.Type == Intermission || ps.Timers.LockPlayer {
		// reset all angle changes so they don't happen after unlock
		for i := range ps.DeltaAngles {
			m.resetDelta(i)
		}
		return
	}

	if ps.Type != Spectator && ps.Health <= 0 {
		// wounded players may look around, the full short keeps more
		// than one degree of resolution
		ps.DeadYaw = int32(int16(cmd.Angles[vec.YAW] + ps.DeltaAngles[vec.YAW]))
		return
	}

	old := ps.ViewAngles

	// circularly clamp the angles with deltas
	for i := range ps.ViewAngles {
		temp := int16(cmd.Angles[i] + ps.DeltaAngles[i])
		if i == vec.PITCH {
			// don't let the player look up or down more than 90 degrees
			if temp > pitchClamp {
				ps.DeltaAngles[i] = pitchClamp - cmd.Angles[i]
				temp = pitchClamp
			} else if temp < -pitchClamp {
				ps.DeltaAngles[i] = -pitchClamp - cmd.Angles[i]
				temp = -pitchClamp
			}
		}
		ps.ViewAngles[i] = math.Short2Angle(int32(temp))
	}

	// TODO: mounted MG42, AA gun and tank arcs need the gun's center
	// angles from the entity layer.
	switch {
	case ps.Mount.Mounted():
	case m.Loadout.MortarSet:
		m.turnLimit(sc, vec.YAW, old[vec.YAW], mortarTurn)
		m.turnLimit(sc, vec.PITCH, old[vec.PITCH], mortarTurn)
		base := m.Ext.MountedWeaponAngles
		m.arcLimit(vec.YAW, base[vec.YAW], mortarYawArc, mortarYawArc)
		m.arcLimit(vec.PITCH, base[vec.PITCH], mortarPitchUp, mortarPitchDn)
	case ps.Posture.Prone:
		m.proneViewAngles(old)
	}
}

func (m *Move) proneViewAngles(old vec.Vec3) {
	ps := m.PS
	newDelta := ps.DeltaAngles[vec.YAW]
	base := m.Ext.MountedWeaponAngles
	pitchMax := float32(pronePitch)

	if m.Loadout.MGSet {
		pitchMax = proneMGPitch
		m.arcLimit(vec.YAW, base[vec.YAW], proneMGArc, proneMGArc)
	}
	m.arcLimit(vec.PITCH, base[vec.PITCH], pitchMax, pitchMax)

	// undo the yaw if the legs rotated into a wall
	if ps.ViewAngles[vec.YAW] != old[vec.YAW] {
		t := m.traceLegs(&m.Ext.ProneLegsOffset, ps.Origin, ps.Origin, nil, ps.ViewAngles)
		if t.AllSolid {
			ps.ViewAngles[vec.YAW] = old[vec.YAW]
			m.resetDelta(vec.YAW)
		} else {
			ps.DeltaAngles[vec.YAW] = newDelta
		}
	}
}
