// SPDX-License-Identifier: GPL-2.0-or-later

package journal

import (
	"math"

	"etmove/pmove"
	"etmove/protocol"
	"etmove/qmsg"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// field numbers of the journal message
const (
	fieldSession = 1
	fieldState   = 2
	fieldExt     = 3
	fieldParams  = 4
	fieldLoadout = 5
	fieldRecord  = 6
)

// field numbers of the record message
const (
	recordCmd    = 1
	recordDigest = 2
)

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func marshalParams(p pmove.Params) []byte {
	var b []byte
	b = appendBool(b, 1, p.Fixed)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(p.FixedMsec)))
	b = appendBool(b, 3, p.ProneDelay)
	b = appendBool(b, 4, p.FixedPhysics)
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(p.FixedPhysicsFPS)))
	return b
}

func loadoutFlags(lo *pmove.Loadout) []*bool {
	return []*bool{&lo.Heavy, &lo.Flamethrower, &lo.MortarSet, &lo.MGSet,
		&lo.Scoped, &lo.Panzer, &lo.Reloading, &lo.HeavySkill, &lo.BattleSense}
}

func marshalLoadout(lo pmove.Loadout) []byte {
	var b []byte
	for i, f := range loadoutFlags(&lo) {
		b = appendBool(b, protowire.Number(i+1), *f)
	}
	b = protowire.AppendTag(b, 10, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(lo.SpeedScale))
}

func marshalRecord(r *Record) []byte {
	w := qmsg.NewWriter()
	protocol.WriteUserCmd(w, &r.Cmd)
	var b []byte
	b = protowire.AppendTag(b, recordCmd, protowire.BytesType)
	b = protowire.AppendBytes(b, w.Bytes())
	b = protowire.AppendTag(b, recordDigest, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, r.Digest)
}

// Marshal encodes the journal in protobuf wire format.
func (j *Journal) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldSession, protowire.BytesType)
	b = protowire.AppendBytes(b, j.Session[:])

	w := qmsg.NewWriter()
	protocol.WritePlayerState(w, j.State)
	b = protowire.AppendTag(b, fieldState, protowire.BytesType)
	b = protowire.AppendBytes(b, w.Bytes())

	w = qmsg.NewWriter()
	protocol.WriteExt(w, j.Ext)
	b = protowire.AppendTag(b, fieldExt, protowire.BytesType)
	b = protowire.AppendBytes(b, w.Bytes())

	b = protowire.AppendTag(b, fieldParams, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalParams(j.Params))
	b = protowire.AppendTag(b, fieldLoadout, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalLoadout(j.Loadout))

	for i := range j.Records {
		b = protowire.AppendTag(b, fieldRecord, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalRecord(&j.Records[i]))
	}
	return b
}

// field is one decoded key/value pair of a message.
type field struct {
	num protowire.Number
	typ protowire.Type
	// raw holds the payload of bytes fields
	raw []byte
	// val holds varint and fixed values
	val uint64
}

// fields splits b into its top level fields.
func fields(b []byte) ([]field, error) {
	var r []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.val, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.val = uint64(v)
		case protowire.Fixed64Type:
			f.val, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		r = append(r, f)
	}
	return r, nil
}

func unmarshalParams(b []byte) (pmove.Params, error) {
	var p pmove.Params
	fs, err := fields(b)
	if err != nil {
		return p, err
	}
	for _, f := range fs {
		switch f.num {
		case 1:
			p.Fixed = f.val != 0
		case 2:
			p.FixedMsec = int32(protowire.DecodeZigZag(f.val))
		case 3:
			p.ProneDelay = f.val != 0
		case 4:
			p.FixedPhysics = f.val != 0
		case 5:
			p.FixedPhysicsFPS = int32(protowire.DecodeZigZag(f.val))
		}
	}
	return p, nil
}

func unmarshalLoadout(b []byte) (pmove.Loadout, error) {
	var lo pmove.Loadout
	fs, err := fields(b)
	if err != nil {
		return lo, err
	}
	flags := loadoutFlags(&lo)
	for _, f := range fs {
		switch {
		case f.num == 10:
			lo.SpeedScale = math.Float32frombits(uint32(f.val))
		case f.num >= 1 && int(f.num) <= len(flags):
			*flags[f.num-1] = f.val != 0
		}
	}
	return lo, nil
}

func unmarshalRecord(b []byte) (Record, error) {
	var r Record
	fs, err := fields(b)
	if err != nil {
		return r, err
	}
	for _, f := range fs {
		switch f.num {
		case recordCmd:
			if r.Cmd, err = protocol.ReadUserCmd(qmsg.NewReader(f.raw)); err != nil {
				return r, err
			}
		case recordDigest:
			r.Digest = f.val
		}
	}
	return r, nil
}

// Unmarshal decodes a journal written by Marshal. Unknown fields are
// skipped.
func Unmarshal(b []byte) (*Journal, error) {
	fs, err := fields(b)
	if err != nil {
		return nil, err
	}
	j := &Journal{}
	for _, f := range fs {
		switch f.num {
		case fieldSession:
			if j.Session, err = uuid.FromBytes(f.raw); err != nil {
				return nil, errors.Wrap(err, "session id")
			}
		case fieldState:
			if j.State, err = protocol.ReadPlayerState(qmsg.NewReader(f.raw)); err != nil {
				return nil, err
			}
		case fieldExt:
			if j.Ext, err = protocol.ReadExt(qmsg.NewReader(f.raw)); err != nil {
				return nil, err
			}
		case fieldParams:
			if j.Params, err = unmarshalParams(f.raw); err != nil {
				return nil, errors.Wrap(err, "params")
			}
		case fieldLoadout:
			if j.Loadout, err = unmarshalLoadout(f.raw); err != nil {
				return nil, errors.Wrap(err, "loadout")
			}
		case fieldRecord:
			r, err := unmarshalRecord(f.raw)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d", len(j.Records))
			}
			j.Records = append(j.Records, r)
		}
	}
	if j.State == nil || j.Ext == nil {
		return nil, errors.New("journal without start state")
	}
	return j, nil
}
