// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"testing"

	"etmove/conlog"
	"etmove/math/vec"
	"etmove/pmove"

	"github.com/stretchr/testify/require"
)

func TestMoveParamsDefaults(t *testing.T) {
	want := pmove.Params{
		FixedMsec:       8,
		FixedPhysics:    true,
		FixedPhysicsFPS: 125,
	}
	require.Equal(t, want, MoveParams())
}

func TestMoveParams(t *testing.T) {
	defer func() {
		PmoveFixed.Reset()
		PmoveMsec.Reset()
		ProneDelay.Reset()
	}()
	PmoveFixed.SetByString("1")
	PmoveMsec.SetByString("50")
	ProneDelay.SetByString("1")
	p := MoveParams()
	require.True(t, p.Fixed)
	require.True(t, p.ProneDelay)
	// clamped to 33
	require.Equal(t, int32(33), p.FixedMsec)
}

func TestApplyTo(t *testing.T) {
	defer Gravity.Reset()
	defer Speed.Reset()
	Gravity.SetValue(400)
	Speed.SetValue(250)
	ps := pmove.NewPlayerState(vec.Vec3{})
	ApplyTo(ps)
	require.Equal(t, int32(400), ps.Gravity)
	require.Equal(t, int32(250), ps.Speed)
}

func TestDeveloperCallback(t *testing.T) {
	defer Developer.Reset()
	Developer.SetByString("1")
	require.True(t, conlog.Developer())
	Developer.SetByString("0")
	require.False(t, conlog.Developer())
}
