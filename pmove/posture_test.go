// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"testing"

	"etmove/cm"
	"etmove/math/vec"

	"github.com/stretchr/testify/require"
)

// closet is a 40 unit cube of free space with its floor at z 0.
func closet() *cm.World {
	return cm.NewWorld(
		cm.SolidBox(vec.Vec3{-64, -64, -16}, vec.Vec3{64, 64, 0}),
		cm.SolidBox(vec.Vec3{-64, -64, 40}, vec.Vec3{64, 64, 56}),
		cm.SolidBox(vec.Vec3{-64, -64, -16}, vec.Vec3{-20, 64, 56}),
		cm.SolidBox(vec.Vec3{20, -64, -16}, vec.Vec3{64, 64, 56}),
		cm.SolidBox(vec.Vec3{-64, -64, -16}, vec.Vec3{64, -20, 56}),
		cm.SolidBox(vec.Vec3{-64, 20, -16}, vec.Vec3{64, 64, 56}),
	)
}

func TestProneRejectedInConfinedSpace(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.CrouchMaxZ = 12
	ps.Posture.Ducked = true
	m := newMove(closet(), ps)
	m.Cmd = UserCmd{ServerTime: 1000, WButtons: WButtonProne}

	before := *ps
	mins, maxs := m.Mins, m.Maxs
	require.False(t, m.checkProne())
	require.Equal(t, before, *ps)
	require.Equal(t, mins, m.Mins)
	require.Equal(t, maxs, m.Maxs)
	require.Equal(t, int32(0), m.Ext.ProneTime)
}

func TestProneFailureLeavesDuckedPlayerDucked(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.CrouchMaxZ = 12
	ps.Posture.Ducked = true
	ps.CommandTime = 950
	m := newMove(closet(), ps)
	m.Cmd = UserCmd{ServerTime: 1000, WButtons: WButtonProne}

	m.Single()
	require.False(t, ps.Posture.Prone)
	require.True(t, ps.Posture.Ducked)
	require.Equal(t, float32(12), m.Maxs[2])
	require.Equal(t, int32(CrouchViewHeight), ps.ViewHeight)
}

func TestProneOnOpenFloor(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	m := newMove(cm.NewWorld(floor()), ps)
	m.Cmd = UserCmd{ServerTime: 1000, WButtons: WButtonProne}

	require.True(t, m.checkProne())
	require.True(t, ps.Posture.Prone)
	require.True(t, ps.Posture.Ducked)
	require.False(t, ps.Posture.ProneMoving)
	require.Equal(t, float32(proneMaxZ), m.Maxs[2])
	require.Equal(t, int32(ProneViewHeight), ps.ViewHeight)
	require.Equal(t, int32(1000), m.Ext.ProneTime)

	// holding the button again inside the delay keeps the player down
	m.Cmd.ServerTime = 1500
	require.True(t, m.checkProne())

	// after the delay the same button gets up again
	m.Cmd.ServerTime = 2000
	require.False(t, m.checkProne())
	require.False(t, ps.Posture.Prone)
	require.True(t, ps.Posture.Ducked)
	require.Equal(t, int32(-2000), m.Ext.ProneTime)
	require.Equal(t, int32(1350), m.Ext.JumpTime)

	// and re-entering waits for the delay as well
	m.Cmd.ServerTime = 2500
	require.False(t, m.checkProne())
	m.Cmd.ServerTime = 2751
	require.True(t, m.checkProne())
}

func TestProneDelayParam(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	m := newMove(cm.NewWorld(floor()), ps)
	m.Params.ProneDelay = true
	m.Ext.ProneTime = -1000
	m.Cmd = UserCmd{ServerTime: 2500, WButtons: WButtonProne}

	require.False(t, m.checkProne())
	require.Equal(t, int32(0), ps.AimSpreadScale)

	m.Cmd.ServerTime = 2800
	require.True(t, m.checkProne())
	require.Equal(t, int32(aimSpreadMax), ps.AimSpreadScale)
}

func TestCanEnterProne(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Move)
		want  bool
	}{
		{"standing", func(m *Move) {}, true},
		{"ladder", func(m *Move) { m.PS.Ladder = true }, false},
		{"mounted", func(m *Move) { m.PS.Mount.MG42 = true }, false},
		{"mortar", func(m *Move) { m.Loadout.MortarSet = true }, false},
		{"swimming", func(m *Move) { m.WaterLevel = 2 }, false},
		{"wading", func(m *Move) { m.WaterLevel = 1 }, true},
		{"firing panzer", func(m *Move) {
			m.Loadout.Panzer = true
			m.PS.WeaponDelay = 100
		}, false},
	}
	for _, test := range tests {
		m := newMove(cm.NewWorld(), NewPlayerState(vec.Vec3{}))
		test.setup(m)
		if got := m.canEnterProne(); got != test.want {
			t.Errorf("%s: canEnterProne() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestProneMovingHysteresis(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.Posture.Prone = true
	ps.Posture.Ducked = true
	m := newMove(cm.NewWorld(floor()), ps)
	m.Ext.ProneTime = 1000

	tests := []struct {
		forward int8
		speed   float32
		want    bool
	}{
		{127, 30, false},
		{127, 41, true},
		{127, 10, true},
		{0, 30, true},
		{0, 19, false},
	}
	for i, test := range tests {
		m.Cmd = UserCmd{ServerTime: 1100, Forward: test.forward}
		ps.Velocity = vec.Vec3{test.speed, 0, 0}
		m.checkProne()
		if ps.Posture.ProneMoving != test.want {
			t.Errorf("%d: ProneMoving = %v, want %v", i, ps.Posture.ProneMoving, test.want)
		}
	}
}

func TestStandUpBlocked(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	ps.Posture.Ducked = true
	ps.CrouchMaxZ = 12
	m := newMove(closet(), ps)
	m.checkDuck()
	require.True(t, ps.Posture.Ducked)
	require.Equal(t, float32(12), m.Maxs[2])

	ps2 := NewPlayerState(vec.Vec3{0, 0, restZ})
	ps2.Posture.Ducked = true
	m2 := newMove(cm.NewWorld(floor()), ps2)
	m2.checkDuck()
	require.False(t, ps2.Posture.Ducked)
	require.Equal(t, float32(48), m2.Maxs[2])
	require.Equal(t, int32(DefaultViewHeight), ps2.ViewHeight)
}
