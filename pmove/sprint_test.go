// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"testing"

	"etmove/cm"
	"etmove/math/vec"
)

func TestSprint(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *Move)
		start   int32
		sprint  bool
		want    int32
		wantExt int32
	}{
		{"drain", func(m *Move) {}, SprintTime, true, SprintTime - 250, 1},
		{"drain empty", func(m *Move) {}, 100, true, 0, 1},
		{"recharge low", func(m *Move) {}, 1000, false, 1025, 0},
		{"recharge high", func(m *Move) {}, 6000, false, 6050, 0},
		{"recharge full", func(m *Move) {}, SprintTime - 10, false, SprintTime, 0},
		{"battle sense", func(m *Move) { m.Loadout.BattleSense = true }, 1000, false, 1040, 0},
		{"adrenaline", func(m *Move) { m.PS.Powerups.Adrenaline = 1 }, 1000, true, SprintTime, 1},
		{"no fatigue", func(m *Move) { m.PS.Powerups.NoFatigue = 1000 }, 1000, true, 1010, 1},
		{"swimming", func(m *Move) { m.WaterLevel = 2 }, 1000, true, 1000, 0},
		{"crouched", func(m *Move) { m.PS.Posture.Ducked = true }, 1000, true, 1025, 0},
	}
	for _, test := range tests {
		m := newMove(cm.NewWorld(), NewPlayerState(vec.Vec3{}))
		m.Ext.SprintTime = test.start
		if test.sprint {
			m.Cmd = UserCmd{Forward: 127, Buttons: ButtonSprint}
		}
		test.setup(m)
		m.sprint(&stepContext{frametime: 0.05, msec: 50})
		if m.Ext.SprintTime != test.want {
			t.Errorf("%s: SprintTime = %d, want %d", test.name, m.Ext.SprintTime, test.want)
		}
		if m.PS.SprintExertTime != test.wantExt {
			t.Errorf("%s: SprintExertTime = %d, want %d", test.name, m.PS.SprintExertTime, test.wantExt)
		}
	}
}

func TestSprintNoFatigueDrainsPowerup(t *testing.T) {
	m := newMove(cm.NewWorld(), NewPlayerState(vec.Vec3{}))
	m.PS.Powerups.NoFatigue = 30
	m.Cmd = UserCmd{Right: 127, Buttons: ButtonSprint}
	m.sprint(&stepContext{frametime: 0.05, msec: 50})
	if m.PS.Powerups.NoFatigue != 0 {
		t.Errorf("NoFatigue = %d, want 0", m.PS.Powerups.NoFatigue)
	}
}
