// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"testing"

	"etmove/cm"
	"etmove/math/vec"

	"github.com/stretchr/testify/require"
)

// restZ is the height of a standing player resting on a floor at z 0.
const restZ = 24.03125

func floor() cm.Brush {
	return cm.SolidBox(vec.Vec3{-1024, -1024, -16}, vec.Vec3{1024, 1024, 0})
}

func newMove(o CollisionOracle, ps *PlayerState) *Move {
	m := &Move{
		PS:        ps,
		Ext:       NewExt(),
		Oracle:    o,
		TraceMask: cm.MaskPlayerSolid,
	}
	m.setPostureBox()
	return m
}

func onGround(ps *PlayerState) {
	ps.GroundEntityNum = cm.EntityNumWorld
}

func walkingContext(frametime float32) *stepContext {
	sc := &stepContext{
		frametime:   frametime,
		msec:        int32(frametime * 1000),
		walking:     true,
		groundPlane: true,
	}
	sc.groundTrace.Plane.Normal = vec.Vec3{0, 0, 1}
	sc.forward, sc.right, sc.up = vec.AngleVectors(vec.Vec3{})
	return sc
}

type fakeOracle struct {
	trace    func(n int, start, end vec.Vec3) cm.Trace
	contents cm.Contents
	calls    int
}

func (f *fakeOracle) Trace(start, mins, maxs, end vec.Vec3, passEntity int, mask cm.Contents) cm.Trace {
	f.calls++
	return f.trace(f.calls, start, end)
}

func (f *fakeOracle) PointContents(p vec.Vec3, passEntity int) cm.Contents {
	return f.contents
}

func hitAt(start, end vec.Vec3, frac float32, normal vec.Vec3) cm.Trace {
	return cm.Trace{
		Fraction:  frac,
		EndPos:    vec.Lerp(start, end, frac),
		Plane:     cm.Plane{Normal: normal},
		EntityNum: cm.EntityNumWorld,
	}
}

func miss(end vec.Vec3) cm.Trace {
	return cm.Trace{Fraction: 1, EndPos: end, EntityNum: cm.EntityNumNone}
}

func TestRunChopsCommand(t *testing.T) {
	w := cm.NewWorld(floor())
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.CommandTime = 1000
	m := newMove(w, ps)
	m.Cmd = UserCmd{ServerTime: 1130, Forward: 127}

	m.Run()
	require.Equal(t, int32(1130), ps.CommandTime)
	require.Equal(t, int32(1), ps.PmoveFrameCount)
	require.Greater(t, ps.Origin[0], float32(0))
	require.InDelta(t, restZ, ps.Origin[2], 1e-4)
	require.Equal(t, cm.EntityNumWorld, ps.GroundEntityNum)
}

func TestRunCatchUpAndStaleCommands(t *testing.T) {
	w := cm.NewWorld(floor())
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	m := newMove(w, ps)

	m.Cmd = UserCmd{ServerTime: 5000}
	m.Run()
	require.Equal(t, int32(5000), ps.CommandTime)

	before := *ps
	m.Cmd = UserCmd{ServerTime: 4000, Forward: 127}
	require.Equal(t, cm.SurfaceFlags(0), m.Run())
	require.Equal(t, before, *ps)
}

func TestFrameCountWraps(t *testing.T) {
	w := cm.NewWorld(floor())
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.PmoveFrameCount = 63
	m := newMove(w, ps)
	m.Cmd = UserCmd{ServerTime: 16}
	m.Run()
	require.Equal(t, int32(0), ps.PmoveFrameCount)
}

func determinismWorld() *cm.World {
	return cm.NewWorld(
		floor(),
		cm.SolidBox(vec.Vec3{100, -64, 0}, vec.Vec3{164, 64, 12}),
		cm.SolidBox(vec.Vec3{300, -512, 0}, vec.Vec3{320, 512, 256}),
		cm.SolidBox(vec.Vec3{-200, 150, 0}, vec.Vec3{200, 170, 256}),
	)
}

func runScript(w *cm.World) ([]PlayerState, []Ext) {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ext := NewExt()
	var states []PlayerState
	var exts []Ext
	for i := 0; i < 80; i++ {
		cmd := UserCmd{
			ServerTime: int32(16 * (i + 1)),
			Forward:    127,
			Angles:     [3]int32{0, int32(i * 300), 0},
		}
		if i%3 == 0 {
			cmd.Right = -90
		}
		if i%17 == 5 {
			cmd.Up = 127
		}
		if i > 40 {
			cmd.Buttons |= ButtonSprint
		}
		m := &Move{PS: ps, Ext: ext, Cmd: cmd, Oracle: w, TraceMask: cm.MaskPlayerSolid}
		m.Run()
		states = append(states, *ps)
		exts = append(exts, *ext)
	}
	return states, exts
}

func TestDeterminism(t *testing.T) {
	w := determinismWorld()
	s1, e1 := runScript(w)
	s2, e2 := runScript(w)
	require.Equal(t, s1, s2)
	require.Equal(t, e1, e2)
	for _, s := range s1 {
		require.True(t, s.Velocity.Finite())
		require.True(t, s.Origin.Finite())
	}
}

func TestFixedPhysicsSnap(t *testing.T) {
	w := cm.NewWorld(floor())
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	m := newMove(w, ps)
	m.Params = Params{FixedPhysics: true, FixedPhysicsFPS: 125}
	m.Cmd = UserCmd{ServerTime: 8, Forward: 127}
	m.Run()
	for i, v := range ps.Velocity {
		require.Equal(t, v, float32(int32(v*64))/64, "axis %d", i)
	}

	ps.Velocity = vec.Vec3{0.2, 0.2, 0}
	sc := &stepContext{msec: 8}
	m.snapVelocity(sc)
	require.Equal(t, vec.Vec3{}, ps.Velocity)
}

func TestIntegerSnapRoundsHalfToEven(t *testing.T) {
	ps := NewPlayerState(vec.Vec3{})
	m := newMove(cm.NewWorld(), ps)
	ps.Velocity = vec.Vec3{2.5, -3.5, 0.49}
	m.snapVelocity(&stepContext{})
	require.Equal(t, vec.Vec3{2, -4, 0}, ps.Velocity)
}

func TestExtrapolate(t *testing.T) {
	w := cm.NewWorld(floor())

	ps := NewPlayerState(vec.Vec3{0, 0, 200})
	ps.Velocity = vec.Vec3{100, 0, 0}
	newMove(w, ps).Extrapolate(0.1)
	require.InDelta(t, 10, ps.Origin[0], 1e-3)
	require.Less(t, ps.Origin[2], float32(200))
	require.Less(t, ps.Velocity[2], float32(0))

	ps = NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.Velocity = vec.Vec3{100, 0, 0}
	newMove(w, ps).Extrapolate(0.1)
	require.InDelta(t, 10, ps.Origin[0], 1e-3)
	require.Equal(t, float32(restZ), ps.Origin[2])
	require.Zero(t, ps.Velocity[2])
}
