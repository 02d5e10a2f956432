// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"testing"

	"etmove/cm"
	"etmove/math/vec"

	"github.com/stretchr/testify/require"
)

// block is a brush behind a player at the origin facing +x.
func block(top float32) cm.Brush {
	return cm.SolidBox(vec.Vec3{-100, -64, 0}, vec.Vec3{-50, 64, top})
}

func prone(w *cm.World) *Move {
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.Posture.Prone = true
	return newMove(w, ps)
}

func TestTraceAllStandingIsBodyOnly(t *testing.T) {
	o := &fakeOracle{trace: func(_ int, start, end vec.Vec3) cm.Trace { return miss(end) }}
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	m := newMove(o, ps)
	m.traceAll(ps.Origin, vec.Add(ps.Origin, vec.Vec3{-20, 0, 0}))
	require.Equal(t, 1, o.calls)

	ps.Posture.Prone = true
	m.setPostureBox()
	o.calls = 0
	m.traceAll(ps.Origin, vec.Add(ps.Origin, vec.Vec3{-20, 0, 0}))
	// body, legs and head; free legs get no second try
	require.Equal(t, 3, o.calls)
}

func TestTraceAllLegsBlocked(t *testing.T) {
	m := prone(cm.NewWorld(floor(), block(100)))
	start := m.PS.Origin
	end := vec.Add(start, vec.Vec3{-20, 0, 0})

	body := m.trace(start, m.Mins, m.Maxs, end, m.TraceMask)
	require.Equal(t, float32(1), body.Fraction)

	tr := m.traceAll(start, end)
	// the legs reach -45.5 and stop 1/32 short of the wall at -50
	require.InDelta(t, (4.5-0.03125)/20, tr.Fraction, 1e-3)
	require.InDelta(t, -20*tr.Fraction, tr.EndPos[0], 1e-4)
	require.Equal(t, float32(restZ), tr.EndPos[2])
}

func TestTraceLegsStepUp(t *testing.T) {
	m := prone(cm.NewWorld(floor(), block(10)))
	start := m.PS.Origin
	end := vec.Add(start, vec.Vec3{-20, 0, 0})
	body := m.trace(start, m.Mins, m.Maxs, end, m.TraceMask)

	var offset float32
	legs := m.traceLegs(&offset, start, end, &body, m.PS.ViewAngles)
	require.Equal(t, float32(1), legs.Fraction)
	// legs rest on top of the block
	require.InDelta(t, 10, offset, 0.1)

	tr := m.traceAllParts(&offset, start, end)
	require.Equal(t, float32(1), tr.Fraction)
}

func TestTraceLegsIgnoreBodies(t *testing.T) {
	corpse := block(100)
	corpse.Contents = cm.ContentsBody
	corpse.Entity = 7
	m := prone(cm.NewWorld(floor(), corpse))
	start := m.PS.Origin
	tr := m.traceAll(start, vec.Add(start, vec.Vec3{-20, 0, 0}))
	require.Equal(t, float32(1), tr.Fraction)
}

func TestTraceHeadAhead(t *testing.T) {
	wall := cm.SolidBox(vec.Vec3{60, -64, 0}, vec.Vec3{100, 64, 100})
	m := prone(cm.NewWorld(floor(), wall))
	start := m.PS.Origin
	end := vec.Add(start, vec.Vec3{10, 0, 0})

	// the body reaches 28, the head 10+36+18 = 64
	body := m.trace(start, m.Mins, m.Maxs, end, m.TraceMask)
	require.Equal(t, float32(1), body.Fraction)
	head := m.traceHead(start, end, m.PS.ViewAngles)
	require.Less(t, head.Fraction, float32(1))

	tr := m.traceAll(start, end)
	require.Equal(t, head.Fraction, tr.Fraction)
	require.InDelta(t, 10*head.Fraction, tr.EndPos[0], 1e-4)
}

func TestTraceLegsAheadWhenDead(t *testing.T) {
	wall := cm.SolidBox(vec.Vec3{50, -64, 0}, vec.Vec3{100, 64, 100})
	ps := NewPlayerState(vec.Vec3{0, 0, restZ})
	onGround(ps)
	ps.Kill()
	m := newMove(cm.NewWorld(floor(), wall), ps)
	start := ps.Origin
	end := vec.Add(start, vec.Vec3{20, 0, 0})
	legs := m.traceLegs(nil, start, end, nil, ps.ViewAngles)
	require.InDelta(t, (4.5-0.03125)/20, legs.Fraction, 1e-3)
}
