// SPDX-License-Identifier: GPL-2.0-or-later

// Package predict runs the client side of the movement contract: commands
// are simulated as soon as they are issued and replayed on top of every
// authoritative snapshot.
package predict

import (
	"etmove/cm"
	"etmove/conlog"
	"etmove/math/vec"
	"etmove/pmove"
)

const (
	// CmdBackup is the number of issued commands kept for replay.
	CmdBackup = 64
	cmdMask   = CmdBackup - 1

	missThreshold = 0.1
	maxErrorDecay = 500
)

// Outcome describes one Acknowledge call.
type Outcome struct {
	// Replayed is the number of commands run on top of the snapshot.
	Replayed int
	// Missed is set when the replay ended somewhere else than the old
	// prediction. Miss is old minus new.
	Missed bool
	Miss   vec.Vec3
	// Lost is set when commands the snapshot did not cover were already
	// dropped from the backup.
	Lost bool
}

// Predictor keeps the predicted state of the local player.
type Predictor struct {
	Oracle  pmove.CollisionOracle
	Params  pmove.Params
	Loadout pmove.Loadout
	// ErrorDecay is the time in ms a prediction error is smoothed over.
	// Zero snaps to the new position.
	ErrorDecay float32
	ShowMiss   bool

	// Error is the accumulated prediction error still to be decayed.
	Error     vec.Vec3
	errorTime int32

	cmds     [CmdBackup]pmove.UserCmd
	issued   int
	ps       pmove.PlayerState
	ext      pmove.Ext
	valid    bool
	teleport bool
}

func New(oracle pmove.CollisionOracle, params pmove.Params, lo pmove.Loadout) *Predictor {
	return &Predictor{
		Oracle:     oracle,
		Params:     params,
		Loadout:    lo,
		ErrorDecay: 100,
	}
}

// PlayerState returns the current prediction. It is owned by p.
func (p *Predictor) PlayerState() *pmove.PlayerState {
	return &p.ps
}

func (p *Predictor) Ext() *pmove.Ext {
	return &p.ext
}

// Teleport marks the next snapshot as a teleport. Its miss is not decayed.
func (p *Predictor) Teleport() {
	p.teleport = true
}

func (p *Predictor) move() pmove.Move {
	return pmove.Move{
		PS:        &p.ps,
		Ext:       &p.ext,
		Oracle:    p.Oracle,
		Params:    p.Params,
		Loadout:   p.Loadout,
		TraceMask: cm.MaskPlayerSolid,
		Predict:   true,
	}
}

func (p *Predictor) command(n int) pmove.UserCmd {
	cmd := p.cmds[n&cmdMask]
	if msec := p.Params.FixedMsec; p.Params.Fixed && msec > 0 {
		cmd.ServerTime = ((cmd.ServerTime + msec - 1) / msec) * msec
	}
	return cmd
}

// Issue stores cmd and moves the prediction forward. Before the first
// snapshot the command is only stored.
func (p *Predictor) Issue(cmd pmove.UserCmd) {
	p.cmds[p.issued&cmdMask] = cmd
	p.issued++
	if !p.valid {
		return
	}
	m := p.move()
	m.Cmd = p.command(p.issued - 1)
	if m.Cmd.ServerTime <= p.ps.CommandTime {
		return
	}
	m.Run()
}

// Acknowledge installs an authoritative snapshot and replays every stored
// command it does not cover yet.
func (p *Predictor) Acknowledge(snap *pmove.PlayerState, ext *pmove.Ext) Outcome {
	var out Outcome
	old := p.ps
	hadOld := p.valid

	p.ps = *snap
	p.ext = *ext
	p.valid = true
	if p.issued == 0 {
		return out
	}

	oldest := p.issued - CmdBackup
	if oldest <= 0 {
		oldest = 0
	} else if p.cmds[oldest&cmdMask].ServerTime > snap.CommandTime {
		out.Lost = true
		if p.ShowMiss {
			conlog.Printf("exceeded command backup\n")
		}
	}
	now := p.cmds[(p.issued-1)&cmdMask].ServerTime

	checked := !hadOld
	check := func() {
		if !checked && p.ps.CommandTime == old.CommandTime {
			checked = true
			p.checkMiss(&old, now, &out)
		}
	}

	m := p.move()
	for n := oldest; n < p.issued; n++ {
		cmd := p.command(n)
		if cmd.ServerTime <= p.ps.CommandTime {
			continue
		}
		check()
		m.Cmd = cmd
		m.TraceMask = cm.MaskPlayerSolid
		m.Run()
		out.Replayed++
	}
	check()
	return out
}

func (p *Predictor) checkMiss(old *pmove.PlayerState, now int32, out *Outcome) {
	switch {
	case p.ps.Mount.Mounted():
		// locked in place
		p.Error = vec.Vec3{}
	case p.teleport:
		p.Error = vec.Vec3{}
		p.teleport = false
		if p.ShowMiss {
			conlog.Printf("prediction teleport\n")
		}
	default:
		delta := vec.Sub(old.Origin, p.ps.Origin)
		l := delta.Length()
		if l <= missThreshold {
			return
		}
		out.Missed = true
		out.Miss = delta
		if p.ShowMiss {
			conlog.Printf("prediction miss: %f\n", l)
		}
		if p.ErrorDecay > 0 {
			t := now - p.errorTime
			f := (p.ErrorDecay - float32(t)) / p.ErrorDecay
			if f < 0 {
				f = 0
			}
			if f > 0 && p.ShowMiss {
				conlog.Printf("double prediction decay: %f\n", f)
			}
			p.Error = p.Error.Scale(f)
		} else {
			p.Error = vec.Vec3{}
		}
		p.Error = vec.Add(delta, p.Error)
		p.errorTime = now
	}
}

// ViewOrigin returns the predicted origin with the remaining error added
// back at time now, so corrections are spread over ErrorDecay.
func (p *Predictor) ViewOrigin(now int32) vec.Vec3 {
	o := p.ps.Origin
	if p.ErrorDecay <= 0 {
		return o
	}
	decay := p.ErrorDecay
	if decay > maxErrorDecay {
		decay = maxErrorDecay
	}
	f := (decay - float32(now-p.errorTime)) / decay
	if f > 0 && f <= 1 {
		return vec.MA(o, f, p.Error)
	}
	return o
}
