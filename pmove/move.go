// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/conlog"
	"etmove/math/vec"
)

const (
	StepSize      = 18
	OverClip      = 1.001
	JumpVelocity  = 270
	MinWalkNormal = 0.7
	MaxTouch      = 32

	jumpDelay      = 850
	waterJumpTime  = 2000
	landTime       = 250
	proneDelay     = 750
	proneDelayLong = 1750
	proneMaxZ      = 12
	proneSpeed     = 0.21

	stopSpeed          = 100
	groundFriction     = 6
	waterFriction      = 1
	slagFriction       = 1
	spectatorFriction  = 5
	ladderFriction     = 14
	groundAccelerate   = 10
	airAccelerate      = 1
	waterAccelerate    = 4
	slagAccelerate     = 2
	flyAccelerate      = 8
	ladderAccelerate   = 10
	swimScale          = 0.5
	slagSwimScale      = 0.3
	sprintDrainPerSec  = 5000
	sprintRegenPerSec  = 500
	sprintRegenSkilled = 800
)

// CollisionOracle answers the geometric questions of the movement code.
// Implementations must be safe for concurrent queries.
type CollisionOracle interface {
	Trace(start, mins, maxs, end vec.Vec3, passEntity int, mask cm.Contents) cm.Trace
	PointContents(p vec.Vec3, passEntity int) cm.Contents
}

// Loadout carries the weapon and skill facts that modify movement.
type Loadout struct {
	Heavy        bool
	Flamethrower bool
	MortarSet    bool
	MGSet        bool
	Scoped       bool
	Panzer       bool
	Reloading    bool
	HeavySkill   bool
	BattleSense  bool
	// SpeedScale is applied on top of the weapon rules. Zero means 1.
	SpeedScale float32
}

// Params are the server tunables shared with predicting clients.
type Params struct {
	Fixed           bool
	FixedMsec       int32
	ProneDelay      bool
	FixedPhysics    bool
	FixedPhysicsFPS int32
}

// Move is the context of one movement call.
type Move struct {
	PS        *PlayerState
	Ext       *Ext
	Cmd       UserCmd
	Oracle    CollisionOracle
	TraceMask cm.Contents
	Loadout   Loadout
	Params    Params

	DebugLevel int
	// Predict is set on clients and suppresses server only events.
	Predict bool

	// results
	Mins       vec.Vec3
	Maxs       vec.Vec3
	WaterLevel int
	WaterType  cm.Contents
	Anim       AnimEvents

	touch    [MaxTouch]int
	numTouch int
}

// Touched returns the entities touched during the last call.
func (m *Move) Touched() []int {
	return m.touch[:m.numTouch]
}

func (m *Move) addTouch(ent int) {
	if ent == cm.EntityNumWorld || m.numTouch == MaxTouch {
		return
	}
	for _, e := range m.touch[:m.numTouch] {
		if e == ent {
			return
		}
	}
	m.touch[m.numTouch] = ent
	m.numTouch++
}

func (m *Move) trace(start, mins, maxs, end vec.Vec3, mask cm.Contents) cm.Trace {
	return m.Oracle.Trace(start, mins, maxs, end, m.PS.ClientNum, mask)
}

func (m *Move) pointContents(p vec.Vec3) cm.Contents {
	return m.Oracle.PointContents(p, m.PS.ClientNum)
}

func (m *Move) addEvent(ev Event) {
	m.PS.AddEvent(ev, 0)
}

func (m *Move) debugf(level int, format string, v ...interface{}) {
	if m.DebugLevel < level {
		return
	}
	conlog.Printf("%d:"+format, append([]interface{}{m.PS.CommandTime}, v...)...)
}

// clipVelocity slides in off a surface with the given normal.
func clipVelocity(in, normal vec.Vec3, overbounce float32) vec.Vec3 {
	backoff := vec.Dot(in, normal)
	if backoff < 0 {
		backoff *= overbounce
	} else {
		backoff /= overbounce
	}
	return vec.Vec3{
		in[0] - float32(normal[0]*backoff),
		in[1] - float32(normal[1]*backoff),
		in[2] - float32(normal[2]*backoff),
	}
}
