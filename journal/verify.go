// SPDX-License-Identifier: GPL-2.0-or-later

package journal

import (
	"fmt"

	"etmove/cm"
	"etmove/conlog"
	"etmove/pmove"
	"etmove/protocol"
)

// DivergenceError reports the first record whose replay produced a
// different state.
type DivergenceError struct {
	Index      int
	ServerTime int32
	Want, Got  uint64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("record %d (time %d) diverged: digest %016x, want %016x",
		e.Index, e.ServerTime, e.Got, e.Want)
}

// Replay runs every recorded command from the start state against oracle
// and calls fn after each one. It stops when fn returns false.
func (j *Journal) Replay(oracle pmove.CollisionOracle, fn func(i int, ps *pmove.PlayerState) bool) {
	ps := *j.State
	ext := *j.Ext
	m := pmove.Move{
		PS:        &ps,
		Ext:       &ext,
		Oracle:    oracle,
		Params:    j.Params,
		Loadout:   j.Loadout,
		TraceMask: cm.MaskPlayerSolid,
	}
	for i := range j.Records {
		m.Cmd = j.Records[i].Cmd
		m.TraceMask = cm.MaskPlayerSolid
		m.Run()
		if !fn(i, &ps) {
			return
		}
	}
}

// Verify replays the journal and returns a *DivergenceError for the first
// command whose result does not match the recording.
func Verify(j *Journal, oracle pmove.CollisionOracle) error {
	var derr *DivergenceError
	j.Replay(oracle, func(i int, ps *pmove.PlayerState) bool {
		r := &j.Records[i]
		if got := protocol.Digest(ps); got != r.Digest {
			derr = &DivergenceError{
				Index:      i,
				ServerTime: r.Cmd.ServerTime,
				Want:       r.Digest,
				Got:        got,
			}
			return false
		}
		return true
	})
	if derr != nil {
		return derr
	}
	conlog.DPrintf("journal %v: %d records verified\n", j.Session, len(j.Records))
	return nil
}
