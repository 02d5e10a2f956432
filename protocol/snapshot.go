// SPDX-License-Identifier: GPL-2.0-or-later

package protocol

import (
	"etmove/math/vec"
	"etmove/pmove"
	"etmove/qmsg"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// decoder remembers the first read error so long field lists can be read
// without checking every call.
type decoder struct {
	r   *qmsg.Reader
	err error
}

func (d *decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadByte()
	d.err = err
	return v
}

func (d *decoder) i8() int8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadInt8()
	d.err = err
	return v
}

func (d *decoder) long() int32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadInt32()
	d.err = err
	return v
}

func (d *decoder) float() float32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadFloat32()
	d.err = err
	return v
}

func (d *decoder) vec3() vec.Vec3 {
	if d.err != nil {
		return vec.Vec3{}
	}
	v, err := d.r.ReadVec3()
	d.err = err
	return v
}

// WritePlayerState appends the full snapshot of ps to w. The flag words use
// the legacy bit layout.
func WritePlayerState(w *qmsg.Writer, ps *pmove.PlayerState) {
	w.WriteInt(ps.CommandTime)
	w.WriteByte(byte(ps.Type))
	w.WriteInt(int32(ps.ClientNum))

	w.WriteVec3(ps.Origin)
	w.WriteVec3(ps.Velocity)
	w.WriteVec3(ps.ViewAngles)
	for _, d := range ps.DeltaAngles {
		w.WriteInt(d)
	}

	w.WriteVec3(ps.Mins)
	w.WriteVec3(ps.Maxs)
	w.WriteFloat(ps.CrouchMaxZ)
	w.WriteFloat(ps.StandViewHeight)
	w.WriteFloat(ps.CrouchViewHeight)
	w.WriteFloat(ps.DeadViewHeight)
	w.WriteInt(ps.ViewHeight)

	w.WriteInt(ps.Speed)
	w.WriteFloat(ps.RunSpeedScale)
	w.WriteFloat(ps.SprintSpeedScale)
	w.WriteFloat(ps.CrouchSpeedScale)
	w.WriteInt(ps.Gravity)
	w.WriteFloat(ps.Friction)

	w.WriteInt(PMFlagBits(ps))
	w.WriteInt(ps.PMTime)
	w.WriteInt(EFlagBits(ps))

	w.WriteInt(int32(ps.GroundEntityNum))
	w.WriteInt8(ps.MovementDir)
	w.WriteInt(ps.JumpTime)
	w.WriteInt(ps.LegsTimer)
	w.WriteInt(ps.TorsoTimer)
	w.WriteInt(ps.Health)
	w.WriteInt(ps.DeadYaw)
	w.WriteByte(ps.Weapon)
	w.WriteInt(ps.WeaponDelay)
	w.WriteInt(ps.AimSpreadScale)
	w.WriteInt(ps.SprintExertTime)
	w.WriteInt(ps.SprintTime)
	w.WriteInt(ps.PmoveFrameCount)

	w.WriteInt(ps.EventSequence)
	for i := range ps.Events {
		w.WriteByte(byte(ps.Events[i]))
		w.WriteInt(ps.EventParms[i])
	}

	w.WriteByte(conditionBits(ps.Conditions))
	w.WriteInt(ps.Powerups.Adrenaline)
	w.WriteInt(ps.Powerups.NoFatigue)
}

// ReadPlayerState reads a snapshot written by WritePlayerState.
func ReadPlayerState(r *qmsg.Reader) (*pmove.PlayerState, error) {
	d := &decoder{r: r}
	ps := &pmove.PlayerState{}

	ps.CommandTime = d.long()
	ps.Type = pmove.PMType(d.u8())
	ps.ClientNum = int(d.long())

	ps.Origin = d.vec3()
	ps.Velocity = d.vec3()
	ps.ViewAngles = d.vec3()
	for i := range ps.DeltaAngles {
		ps.DeltaAngles[i] = d.long()
	}

	ps.Mins = d.vec3()
	ps.Maxs = d.vec3()
	ps.CrouchMaxZ = d.float()
	ps.StandViewHeight = d.float()
	ps.CrouchViewHeight = d.float()
	ps.DeadViewHeight = d.float()
	ps.ViewHeight = d.long()

	ps.Speed = d.long()
	ps.RunSpeedScale = d.float()
	ps.SprintSpeedScale = d.float()
	ps.CrouchSpeedScale = d.float()
	ps.Gravity = d.long()
	ps.Friction = d.float()

	SetPMFlagBits(ps, d.long())
	ps.PMTime = d.long()
	SetEFlagBits(ps, d.long())

	ps.GroundEntityNum = int(d.long())
	ps.MovementDir = d.i8()
	ps.JumpTime = d.long()
	ps.LegsTimer = d.long()
	ps.TorsoTimer = d.long()
	ps.Health = d.long()
	ps.DeadYaw = d.long()
	ps.Weapon = d.u8()
	ps.WeaponDelay = d.long()
	ps.AimSpreadScale = d.long()
	ps.SprintExertTime = d.long()
	ps.SprintTime = d.long()
	ps.PmoveFrameCount = d.long()

	ps.EventSequence = d.long()
	for i := range ps.Events {
		ps.Events[i] = pmove.Event(d.u8())
		ps.EventParms[i] = d.long()
	}

	setConditionBits(&ps.Conditions, d.u8())
	ps.Powerups.Adrenaline = d.long()
	ps.Powerups.NoFatigue = d.long()

	if d.err != nil {
		return nil, errors.Wrap(d.err, "reading player state")
	}
	return ps, nil
}

// WriteExt appends the predicted bookkeeping that never leaves the owning
// client.
func WriteExt(w *qmsg.Writer, ext *pmove.Ext) {
	w.WriteInt(ext.JumpTime)
	w.WriteInt(ext.SprintTime)
	w.WriteInt(ext.ProneTime)
	w.WriteFloat(ext.ProneLegsOffset)
	w.WriteInt(ext.AirLeft)
	w.WriteVec3(ext.MountedWeaponAngles)
}

func ReadExt(r *qmsg.Reader) (*pmove.Ext, error) {
	d := &decoder{r: r}
	ext := &pmove.Ext{}
	ext.JumpTime = d.long()
	ext.SprintTime = d.long()
	ext.ProneTime = d.long()
	ext.ProneLegsOffset = d.float()
	ext.AirLeft = d.long()
	ext.MountedWeaponAngles = d.vec3()
	if d.err != nil {
		return nil, errors.Wrap(d.err, "reading movement extension")
	}
	return ext, nil
}

func WriteUserCmd(w *qmsg.Writer, cmd *pmove.UserCmd) {
	w.WriteInt(cmd.ServerTime)
	for _, a := range cmd.Angles {
		w.WriteInt(a)
	}
	w.WriteInt8(cmd.Forward)
	w.WriteInt8(cmd.Right)
	w.WriteInt8(cmd.Up)
	w.WriteByte(cmd.Buttons)
	w.WriteByte(cmd.WButtons)
	w.WriteByte(byte(cmd.DoubleTap))
	w.WriteByte(cmd.Weapon)
}

func ReadUserCmd(r *qmsg.Reader) (pmove.UserCmd, error) {
	d := &decoder{r: r}
	var cmd pmove.UserCmd
	cmd.ServerTime = d.long()
	for i := range cmd.Angles {
		cmd.Angles[i] = d.long()
	}
	cmd.Forward = d.i8()
	cmd.Right = d.i8()
	cmd.Up = d.i8()
	cmd.Buttons = d.u8()
	cmd.WButtons = d.u8()
	cmd.DoubleTap = pmove.DoubleTap(d.u8())
	cmd.Weapon = d.u8()
	if d.err != nil {
		return pmove.UserCmd{}, errors.Wrap(d.err, "reading user command")
	}
	return cmd, nil
}

// Digest hashes the encoded snapshot of ps. Two states with the same
// digest look the same to every client.
func Digest(ps *pmove.PlayerState) uint64 {
	w := qmsg.NewWriter()
	WritePlayerState(w, ps)
	return xxh3.Hash(w.Bytes())
}
