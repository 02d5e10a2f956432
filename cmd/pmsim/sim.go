// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"etmove/cm"
	"etmove/cvars"
	"etmove/journal"
	"etmove/math"
	"etmove/pmove"
	"etmove/predict"
)

// frame is the outcome of one command on the server.
type frame struct {
	Cmd     pmove.UserCmd
	State   pmove.PlayerState
	Events  []pmove.Event
	Touched []int
	Outcome predict.Outcome
}

type simulation struct {
	scene   *cm.Scene
	script  *script
	latency int
	// journal, if set, records every server command
	journal *journal.Journal
}

func spawnState(sp cm.Spawn) (*pmove.PlayerState, *pmove.Ext) {
	ps := pmove.NewPlayerState(sp.Origin)
	ps.ViewAngles = sp.Angles
	for i, a := range sp.Angles {
		ps.DeltaAngles[i] = math.Angle2Short(a)
	}
	cvars.ApplyTo(ps)
	return ps, pmove.NewExt()
}

func newEvents(ps *pmove.PlayerState, before int32) []pmove.Event {
	var evs []pmove.Event
	if ps.EventSequence-before > pmove.MaxPSEvents {
		before = ps.EventSequence - pmove.MaxPSEvents
	}
	for i := before; i < ps.EventSequence; i++ {
		evs = append(evs, ps.Events[i&(pmove.MaxPSEvents-1)])
	}
	return evs
}

// run plays the script on a server and on a client that is latency
// commands ahead of it, acknowledging every server state.
func (s *simulation) run(ps *pmove.PlayerState, ext *pmove.Ext) []frame {
	params := cvars.MoveParams()
	world := s.scene.World
	server := pmove.Move{
		PS:         ps,
		Ext:        ext,
		Oracle:     world,
		Params:     params,
		Loadout:    s.script.Loadout,
		DebugLevel: int(cvars.PmoveDebug.Int()),
	}
	client := predict.New(world, params, s.script.Loadout)
	client.ErrorDecay = cvars.ErrorDecay.Value()
	client.ShowMiss = cvars.ShowMiss.Bool()
	client.Acknowledge(ps, ext)

	cmds := s.script.Cmds
	frames := make([]frame, 0, len(cmds))
	step := func(cmd pmove.UserCmd) {
		seq := ps.EventSequence
		server.Cmd = cmd
		server.TraceMask = cm.MaskPlayerSolid
		server.Run()
		if s.journal != nil {
			s.journal.Add(cmd, ps)
		}
		frames = append(frames, frame{
			Cmd:     cmd,
			State:   *ps,
			Events:  newEvents(ps, seq),
			Touched: append([]int(nil), server.Touched()...),
			Outcome: client.Acknowledge(ps, ext),
		})
	}
	for i, cmd := range cmds {
		client.Issue(cmd)
		if i >= s.latency {
			step(cmds[i-s.latency])
		}
	}
	start := len(cmds) - s.latency
	if start < 0 {
		start = 0
	}
	for _, cmd := range cmds[start:] {
		step(cmd)
	}
	return frames
}
