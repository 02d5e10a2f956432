// SPDX-License-Identifier: GPL-2.0-or-later

// Package journal records movement sessions so they can be replayed and
// checked for divergence.
package journal

import (
	"os"

	"etmove/pmove"
	"etmove/protocol"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Record is one command and the digest of the state it produced.
type Record struct {
	Cmd    pmove.UserCmd
	Digest uint64
}

// Journal is a recorded session: the starting state, the movement rules in
// effect and every command applied since.
type Journal struct {
	Session uuid.UUID
	State   *pmove.PlayerState
	Ext     *pmove.Ext
	Params  pmove.Params
	Loadout pmove.Loadout
	Records []Record
}

// New starts a journal at the given state. The state is copied.
func New(ps *pmove.PlayerState, ext *pmove.Ext, params pmove.Params, lo pmove.Loadout) (*Journal, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "journal session id")
	}
	s := *ps
	e := *ext
	return &Journal{
		Session: id,
		State:   &s,
		Ext:     &e,
		Params:  params,
		Loadout: lo,
	}, nil
}

// Add records cmd together with the state it resulted in.
func (j *Journal) Add(cmd pmove.UserCmd, ps *pmove.PlayerState) {
	j.Records = append(j.Records, Record{
		Cmd:    cmd,
		Digest: protocol.Digest(ps),
	})
}

func (j *Journal) Save(path string) error {
	if err := os.WriteFile(path, j.Marshal(), 0660); err != nil {
		return errors.Wrapf(err, "writing journal %s", path)
	}
	return nil
}

func Load(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading journal %s", path)
	}
	j, err := Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding journal %s", path)
	}
	return j, nil
}
