// SPDX-License-Identifier: GPL-2.0-or-later

// Package protocol maps the movement state onto the legacy network layout.
package protocol

import (
	"etmove/pmove"
)

// pm_flags
const (
	PMFDucked        = 1
	PMFJumpHeld      = 2
	PMFLadder        = 4
	PMFBackwardsJump = 8
	PMFBackwardsRun  = 16
	PMFTimeLand      = 32
	PMFTimeKnockback = 64
	PMFTimeWaterJump = 256
	PMFRespawned     = 512
	PMFFlailing      = 2048
	PMFFollow        = 4096
	PMFLimbo         = 16384
	PMFTimeLock      = 32768

	PMFAllTimes = PMFTimeWaterJump | PMFTimeLand | PMFTimeKnockback | PMFTimeLock
)

// eFlags
const (
	EFDead        = 0x00000001
	EFCrouching   = 0x00000010
	EFMG42Active  = 0x00000020
	EFFiring      = 0x00000080
	EFBreath      = 0x00000100
	EFTalk        = 0x00000200
	EFMountedTank = 0x00008000
	EFZooming     = 0x00040000
	EFProne       = 0x00080000
	EFProneMoving = 0x00100000
	EFAAGunActive = 0x00400000

	EFMounted = EFMG42Active | EFMountedTank | EFAAGunActive
)

type bit struct {
	mask  int32
	field func(ps *pmove.PlayerState) *bool
}

var pmFlagBits = []bit{
	{PMFDucked, func(ps *pmove.PlayerState) *bool { return &ps.Posture.Ducked }},
	{PMFJumpHeld, func(ps *pmove.PlayerState) *bool { return &ps.Jump.Held }},
	{PMFLadder, func(ps *pmove.PlayerState) *bool { return &ps.Ladder }},
	{PMFBackwardsJump, func(ps *pmove.PlayerState) *bool { return &ps.Jump.Backwards }},
	{PMFBackwardsRun, func(ps *pmove.PlayerState) *bool { return &ps.Jump.BackwardsRun }},
	{PMFTimeLand, func(ps *pmove.PlayerState) *bool { return &ps.Timers.Land }},
	{PMFTimeKnockback, func(ps *pmove.PlayerState) *bool { return &ps.Timers.Knockback }},
	{PMFTimeWaterJump, func(ps *pmove.PlayerState) *bool { return &ps.Timers.WaterJump }},
	{PMFRespawned, func(ps *pmove.PlayerState) *bool { return &ps.Respawned }},
	{PMFFlailing, func(ps *pmove.PlayerState) *bool { return &ps.Flailing }},
	{PMFFollow, func(ps *pmove.PlayerState) *bool { return &ps.Follow }},
	{PMFLimbo, func(ps *pmove.PlayerState) *bool { return &ps.Limbo }},
	{PMFTimeLock, func(ps *pmove.PlayerState) *bool { return &ps.Timers.LockPlayer }},
}

var eFlagBits = []bit{
	{EFDead, func(ps *pmove.PlayerState) *bool { return &ps.Posture.Dead }},
	{EFCrouching, func(ps *pmove.PlayerState) *bool { return &ps.Posture.Crouching }},
	{EFMG42Active, func(ps *pmove.PlayerState) *bool { return &ps.Mount.MG42 }},
	{EFFiring, func(ps *pmove.PlayerState) *bool { return &ps.Firing }},
	{EFBreath, func(ps *pmove.PlayerState) *bool { return &ps.Breath }},
	{EFTalk, func(ps *pmove.PlayerState) *bool { return &ps.Talk }},
	{EFMountedTank, func(ps *pmove.PlayerState) *bool { return &ps.Mount.Tank }},
	{EFZooming, func(ps *pmove.PlayerState) *bool { return &ps.Zooming }},
	{EFProne, func(ps *pmove.PlayerState) *bool { return &ps.Posture.Prone }},
	{EFProneMoving, func(ps *pmove.PlayerState) *bool { return &ps.Posture.ProneMoving }},
	{EFAAGunActive, func(ps *pmove.PlayerState) *bool { return &ps.Mount.AAGun }},
}

func pack(ps *pmove.PlayerState, bits []bit) int32 {
	var r int32
	for _, b := range bits {
		if *b.field(ps) {
			r |= b.mask
		}
	}
	return r
}

func unpack(ps *pmove.PlayerState, bits []bit, v int32) {
	for _, b := range bits {
		*b.field(ps) = v&b.mask != 0
	}
}

// PMFlagBits returns the pm_flags word of ps.
func PMFlagBits(ps *pmove.PlayerState) int32 {
	return pack(ps, pmFlagBits)
}

// SetPMFlagBits sets the fields covered by pm_flags. Unknown bits are
// dropped.
func SetPMFlagBits(ps *pmove.PlayerState, v int32) {
	unpack(ps, pmFlagBits, v)
}

// EFlagBits returns the movement related eFlags of ps.
func EFlagBits(ps *pmove.PlayerState) int32 {
	return pack(ps, eFlagBits)
}

// SetEFlagBits sets the fields covered by eFlags. Bits owned by other
// systems are ignored.
func SetEFlagBits(ps *pmove.PlayerState, v int32) {
	unpack(ps, eFlagBits, v)
}

// conditionBits packs the animation conditions in declaration order.
func conditionBits(c pmove.Conditions) uint8 {
	var r uint8
	for i, b := range []bool{c.Underwater, c.Crouching, c.Firing, c.Mounted,
		c.Underhand, c.Prone, c.ProneMoving, c.Flailing} {
		if b {
			r |= 1 << i
		}
	}
	return r
}

func setConditionBits(c *pmove.Conditions, v uint8) {
	for i, b := range []*bool{&c.Underwater, &c.Crouching, &c.Firing, &c.Mounted,
		&c.Underhand, &c.Prone, &c.ProneMoving, &c.Flailing} {
		*b = v&(1<<i) != 0
	}
}
