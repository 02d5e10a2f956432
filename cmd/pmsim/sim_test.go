// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"testing"

	"etmove/cm"
	"etmove/cvars"
	"etmove/journal"
	"etmove/math/vec"
	"etmove/pmove"

	"github.com/stretchr/testify/require"
)

func testScene() *cm.Scene {
	return &cm.Scene{
		World: cm.NewWorld(
			cm.SolidBox(vec.Vec3{-1024, -1024, -16}, vec.Vec3{1024, 1024, 0}),
			cm.SolidBox(vec.Vec3{128, -512, 0}, vec.Vec3{160, 512, 256}),
		),
		Spawn: cm.Spawn{Origin: vec.Vec3{0, 0, 24.03125}},
	}
}

func walkScript(n int) *script {
	s := &script{}
	for i := 1; i <= n; i++ {
		s.Cmds = append(s.Cmds, pmove.UserCmd{ServerTime: int32(16 * i), Forward: 127})
	}
	return s
}

func TestSimulationRunsEveryCommand(t *testing.T) {
	for _, latency := range []int{0, 2, 10, 80} {
		sim := &simulation{scene: testScene(), script: walkScript(60), latency: latency}
		ps, ext := spawnState(sim.scene.Spawn)
		frames := sim.run(ps, ext)
		require.Len(t, frames, 60, "latency %d", latency)
		for i, f := range frames {
			if f.Cmd.ServerTime != int32(16*(i+1)) {
				t.Errorf("latency %d frame %d: time %d", latency, i, f.Cmd.ServerTime)
			}
			if f.Outcome.Missed {
				t.Errorf("latency %d frame %d: miss %v", latency, i, f.Outcome.Miss)
			}
		}
		last := frames[len(frames)-1].State
		require.Equal(t, int32(960), last.CommandTime)
		// the wall stops the player
		require.Less(t, last.Origin[0], float32(128-18))
		require.Greater(t, last.Origin[0], float32(64))
	}
}

func TestSimulationJournal(t *testing.T) {
	scene := testScene()
	sim := &simulation{scene: scene, script: walkScript(40), latency: 1}
	ps, ext := spawnState(scene.Spawn)
	j, err := journal.New(ps, ext, cvars.MoveParams(), pmove.Loadout{})
	require.NoError(t, err)
	sim.journal = j
	sim.run(ps, ext)
	require.Len(t, j.Records, 40)
	require.NoError(t, journal.Verify(j, scene.World))
}

func TestSpawnState(t *testing.T) {
	ps, _ := spawnState(cm.Spawn{Origin: vec.Vec3{1, 2, 3}, Angles: vec.Vec3{0, 90, 0}})
	require.Equal(t, vec.Vec3{1, 2, 3}, ps.Origin)
	require.Equal(t, [3]int32{0, 16384, 0}, ps.DeltaAngles)
	require.Equal(t, int32(800), ps.Gravity)
}

func TestNewEvents(t *testing.T) {
	ps := pmove.NewPlayerState(vec.Vec3{})
	ps.AddEvent(pmove.EventFootstep, 0)
	seq := ps.EventSequence
	require.Empty(t, newEvents(ps, seq))
	ps.AddEvent(pmove.EventStep8, 0)
	require.Equal(t, []pmove.Event{pmove.EventStep8}, newEvents(ps, seq))
	ps.AddEvent(pmove.EventFallShort, 0)
	ps.AddEvent(pmove.EventWaterTouch, 0)
	require.Equal(t, []pmove.Event{pmove.EventFallShort, pmove.EventWaterTouch}, newEvents(ps, seq))
}

func TestTestdata(t *testing.T) {
	scene, err := cm.LoadScene("testdata/stairs.yaml")
	require.NoError(t, err)
	sc, err := loadScript("testdata/walk.yaml")
	require.NoError(t, err)
	require.Len(t, sc.Cmds, 174)

	sim := &simulation{scene: scene, script: sc, latency: 4}
	ps, ext := spawnState(scene.Spawn)
	frames := sim.run(ps, ext)
	require.Len(t, frames, len(sc.Cmds))

	var steps int
	for _, f := range frames {
		for _, e := range f.Events {
			if e >= pmove.EventStep4 && e <= pmove.EventStep16 {
				steps++
			}
		}
	}
	require.Greater(t, steps, 0)
	// the top stair is 48 units up
	require.Greater(t, ps.Origin[2], float32(48))
}
