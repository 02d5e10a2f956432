// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"
)

type PMType uint8

// Everything from Dead on ignores movement input.
const (
	Normal PMType = iota
	Noclip
	Spectator
	Dead
	Freeze
	Intermission
)

func (t PMType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Noclip:
		return "noclip"
	case Spectator:
		return "spectator"
	case Dead:
		return "dead"
	case Freeze:
		return "freeze"
	case Intermission:
		return "intermission"
	}
	return "unknown"
}

const (
	DefaultViewHeight = 40
	CrouchViewHeight  = 16
	DeadViewHeight    = -16
	ProneViewHeight   = -8
	DeadBodyHeight    = 24

	MaxPSEvents    = 2
	SprintTime     = 20000
	HoldBreathTime = 12000
)

// Posture groups the stance state that decides the collision volume.
type Posture struct {
	Ducked      bool
	Prone       bool
	ProneMoving bool
	Crouching   bool
	Dead        bool
}

type JumpState struct {
	// Held latches until the jump input is released.
	Held         bool
	Backwards    bool
	BackwardsRun bool
}

// Timers name which windows PMTime belongs to.
type Timers struct {
	Land       bool
	Knockback  bool
	WaterJump  bool
	LockPlayer bool
}

func (t Timers) Any() bool {
	return t.Land || t.Knockback || t.WaterJump || t.LockPlayer
}

type Mount struct {
	MG42  bool
	AAGun bool
	Tank  bool
}

func (m Mount) Mounted() bool {
	return m.MG42 || m.AAGun || m.Tank
}

// Conditions are published for the animation layer. Movement never reads
// them back.
type Conditions struct {
	Underwater  bool
	Crouching   bool
	Firing      bool
	Mounted     bool
	Underhand   bool
	Prone       bool
	ProneMoving bool
	Flailing    bool
}

type Powerups struct {
	Adrenaline int32
	NoFatigue  int32
}

// PlayerState is the persistent movement state of one player. A single
// simulation step owns it for the duration of the call.
type PlayerState struct {
	CommandTime int32
	Type        PMType
	ClientNum   int

	Origin      vec.Vec3
	Velocity    vec.Vec3
	ViewAngles  vec.Vec3
	DeltaAngles [3]int32

	// Mins and Maxs are the standing box. The active box lives in Move.
	Mins             vec.Vec3
	Maxs             vec.Vec3
	CrouchMaxZ       float32
	StandViewHeight  float32
	CrouchViewHeight float32
	DeadViewHeight   float32
	ViewHeight       int32

	Speed            int32
	RunSpeedScale    float32
	SprintSpeedScale float32
	CrouchSpeedScale float32
	Gravity          int32
	Friction         float32

	Posture   Posture
	Jump      JumpState
	Timers    Timers
	PMTime    int32
	Mount     Mount
	Ladder    bool
	Respawned bool
	Limbo     bool
	Flailing  bool
	Follow    bool
	Firing    bool
	Zooming   bool
	Talk      bool
	Breath    bool

	GroundEntityNum int
	MovementDir     int8
	JumpTime        int32
	LegsTimer       int32
	TorsoTimer      int32
	Health          int32
	DeadYaw         int32
	Weapon          uint8
	WeaponDelay     int32
	AimSpreadScale  int32
	SprintExertTime int32
	SprintTime      int32
	PmoveFrameCount int32

	EventSequence int32
	Events        [MaxPSEvents]Event
	EventParms    [MaxPSEvents]int32

	Conditions Conditions
	Powerups   Powerups
}

// Ext holds the movement bookkeeping that is predicted but never sent to
// other clients.
type Ext struct {
	JumpTime        int32
	SprintTime      int32
	ProneTime       int32
	ProneLegsOffset float32
	AirLeft         int32
	// MountedWeaponAngles is the view the game recorded when a mortar was
	// set or the player went prone.
	MountedWeaponAngles vec.Vec3
}

// NewPlayerState returns a living player standing at origin with the stock
// movement tuning.
func NewPlayerState(origin vec.Vec3) *PlayerState {
	return &PlayerState{
		Type:             Normal,
		Origin:           origin,
		Mins:             vec.Vec3{-18, -18, -24},
		Maxs:             vec.Vec3{18, 18, 48},
		CrouchMaxZ:       48 - (DefaultViewHeight - CrouchViewHeight),
		StandViewHeight:  DefaultViewHeight,
		CrouchViewHeight: CrouchViewHeight,
		DeadViewHeight:   DeadViewHeight,
		ViewHeight:       DefaultViewHeight,
		Speed:            320,
		RunSpeedScale:    0.8,
		SprintSpeedScale: 1.1,
		CrouchSpeedScale: 0.25,
		Gravity:          800,
		Friction:         1,
		GroundEntityNum:  cm.EntityNumNone,
		Health:           100,
	}
}

func NewExt() *Ext {
	return &Ext{
		SprintTime: SprintTime,
		AirLeft:    HoldBreathTime,
	}
}

// Kill switches the player into the dead posture with the corpse box.
func (ps *PlayerState) Kill() {
	ps.Type = Dead
	ps.Health = 0
	ps.Posture.Dead = true
	ps.Posture.Prone = false
	ps.Posture.ProneMoving = false
	ps.Maxs[2] = DeadBodyHeight
}

// AddEvent queues a predictable event in the two slot ring.
func (ps *PlayerState) AddEvent(ev Event, parm int32) {
	slot := ps.EventSequence & (MaxPSEvents - 1)
	ps.Events[slot] = ev
	ps.EventParms[slot] = parm
	ps.EventSequence++
}
