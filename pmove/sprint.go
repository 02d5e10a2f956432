// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

// sprint drains and recharges the stamina. Nothing happens under water.
func (m *Move) sprint(sc *stepContext) {
	ps := m.PS
	ext := m.Ext
	if m.WaterLevel > 1 {
		return
	}

	sprinting := m.Cmd.Buttons&ButtonSprint != 0 && (m.Cmd.Forward != 0 || m.Cmd.Right != 0) &&
		!ps.Posture.Ducked && !ps.Posture.Prone

	if sprinting {
		switch {
		case ps.Powerups.Adrenaline != 0:
			ext.SprintTime = SprintTime
		case ps.Powerups.NoFatigue != 0:
			// take time from powerup before taking it from stamina and
			// keep recharging while exerting
			ps.Powerups.NoFatigue -= 50
			ext.SprintTime += 10
			if ext.SprintTime > SprintTime {
				ext.SprintTime = SprintTime
			}
			if ps.Powerups.NoFatigue < 0 {
				ps.Powerups.NoFatigue = 0
			}
		default:
			ext.SprintTime = int32(float32(ext.SprintTime) - float32(sprintDrainPerSec*sc.frametime))
		}
		if ext.SprintTime < 0 {
			ext.SprintTime = 0
		}
		if ps.SprintExertTime == 0 {
			ps.SprintExertTime = 1
		}
		return
	}

	switch {
	case ps.Powerups.Adrenaline != 0:
		ext.SprintTime = SprintTime
	case ps.Powerups.NoFatigue != 0:
		// recharge at 2x with stamina powerup
		ext.SprintTime += 10
	default:
		rechargebase := float32(sprintRegenPerSec)
		if m.Loadout.BattleSense {
			rechargebase = sprintRegenSkilled
		}
		ext.SprintTime = int32(float32(ext.SprintTime) + float32(rechargebase*sc.frametime))
		// the top of the bar refills faster
		if ext.SprintTime > 5000 {
			ext.SprintTime = int32(float32(ext.SprintTime) + float32(rechargebase*sc.frametime))
		}
	}
	if ext.SprintTime > SprintTime {
		ext.SprintTime = SprintTime
	}
	ps.SprintExertTime = 0
}
