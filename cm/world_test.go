// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"testing"

	"etmove/math/vec"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/stretchr/testify/require"
)

var (
	playerMins = vec.Vec3{-15, -15, -24}
	playerMaxs = vec.Vec3{15, 15, 32}
)

func floorWorld() *World {
	return NewWorld(SolidBox(vec.Vec3{-512, -512, -16}, vec.Vec3{512, 512, 0}))
}

func TestTraceHitsFloor(t *testing.T) {
	w := floorWorld()
	tr := w.Trace(vec.Vec3{0, 0, 100}, playerMins, playerMaxs, vec.Vec3{0, 0, 0}, 0, MaskPlayerSolid)
	require.False(t, tr.AllSolid)
	require.False(t, tr.StartSolid)
	require.Less(t, tr.Fraction, float32(1))
	require.InDelta(t, 24.03125, tr.EndPos[2], 1e-3)
	require.Equal(t, vec.Vec3{0, 0, 1}, tr.Plane.Normal)
	require.Equal(t, EntityNumWorld, tr.EntityNum)
	require.Equal(t, ContentsSolid, tr.Contents)
}

func TestTraceMisses(t *testing.T) {
	w := floorWorld()
	start := vec.Vec3{0, 0, 100}
	end := vec.Vec3{50, 0, 100}
	tr := w.Trace(start, playerMins, playerMaxs, end, 0, MaskPlayerSolid)
	require.Equal(t, float32(1), tr.Fraction)
	require.Equal(t, end, tr.EndPos)
	require.Equal(t, EntityNumNone, tr.EntityNum)
	require.False(t, tr.Hit())
}

func TestTraceAllSolid(t *testing.T) {
	w := floorWorld()
	p := vec.Vec3{0, 0, -5}
	tr := w.Trace(p, vec.Vec3{}, vec.Vec3{}, p, 0, MaskPlayerSolid)
	require.True(t, tr.AllSolid)
	require.True(t, tr.StartSolid)
	require.Equal(t, float32(0), tr.Fraction)
	require.Equal(t, p, tr.EndPos)
}

func TestTraceLeavesSolid(t *testing.T) {
	w := floorWorld()
	tr := w.Trace(vec.Vec3{0, 0, -5}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{0, 0, 50}, 0, MaskPlayerSolid)
	require.True(t, tr.StartSolid)
	require.False(t, tr.AllSolid)
	require.Equal(t, float32(1), tr.Fraction)
}

func TestTraceNearestBrushWins(t *testing.T) {
	w := NewWorld(
		SolidBox(vec.Vec3{200, -64, -64}, vec.Vec3{216, 64, 64}),
		SolidBox(vec.Vec3{100, -64, -64}, vec.Vec3{116, 64, 64}),
	)
	tr := w.Trace(vec.Vec3{0, 0, 0}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{300, 0, 0}, 0, MaskSolid)
	require.InDelta(t, 100-0.03125, tr.EndPos[0], 1e-3)
	require.Equal(t, vec.Vec3{-1, 0, 0}, tr.Plane.Normal)
}

func TestTraceMaskAndPassEntity(t *testing.T) {
	water := Brush{
		Box:      cube.Box(-64, -64, -64, 64, 64, 0),
		Contents: ContentsWater,
		Entity:   EntityNumWorld,
	}
	body := Brush{
		Box:      cube.Box(100, -16, -24, 132, 16, 48),
		Contents: ContentsBody,
		Entity:   3,
	}
	w := NewWorld(water, body)

	tr := w.Trace(vec.Vec3{0, 0, 32}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{0, 0, -32}, 0, MaskPlayerSolid)
	require.Equal(t, float32(1), tr.Fraction, "water must not block a player")

	tr = w.Trace(vec.Vec3{0, 0, 0}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{200, 0, 0}, 0, MaskPlayerSolid)
	require.Less(t, tr.Fraction, float32(1))
	require.Equal(t, 3, tr.EntityNum)

	tr = w.Trace(vec.Vec3{0, 0, 0}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{200, 0, 0}, 3, MaskPlayerSolid)
	require.Equal(t, float32(1), tr.Fraction, "own body must be ignored")

	tr = w.Trace(vec.Vec3{0, 0, 0}, vec.Vec3{}, vec.Vec3{}, vec.Vec3{200, 0, 0}, 0, MaskDeadSolid)
	require.Equal(t, float32(1), tr.Fraction, "bodies are not dead solid")
}

func TestPointContents(t *testing.T) {
	w := NewWorld(
		Brush{Box: cube.Box(-64, -64, -64, 64, 64, 0), Contents: ContentsWater, Entity: EntityNumWorld},
		SolidBox(vec.Vec3{-64, -64, -80}, vec.Vec3{64, 64, -64}),
	)
	tests := []struct {
		p    vec.Vec3
		want Contents
	}{
		{vec.Vec3{0, 0, -10}, ContentsWater},
		{vec.Vec3{0, 0, 10}, 0},
		{vec.Vec3{0, 0, -64}, ContentsWater | ContentsSolid},
		{vec.Vec3{0, 0, -70}, ContentsSolid},
	}
	for _, test := range tests {
		if got := w.PointContents(test.p, EntityNumNone); got != test.want {
			t.Errorf("PointContents(%v) = %v want %v", test.p, got, test.want)
		}
	}
}
