// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/math/vec"
)

const aimSpreadMax = 255

// postureTxn is a trial posture change. The fields touched by a trial are
// snapshotted on begin and put back by rollback.
type postureTxn struct {
	m       *Move
	origin  vec.Vec3
	posture Posture
	mins    vec.Vec3
	maxs    vec.Vec3
}

func (m *Move) beginPosture() postureTxn {
	return postureTxn{
		m:       m,
		origin:  m.PS.Origin,
		posture: m.PS.Posture,
		mins:    m.Mins,
		maxs:    m.Maxs,
	}
}

// fits sets the box for the trial posture and checks that it is free where
// the player stands.
func (tx *postureTxn) fits(p Posture, maxz float32) bool {
	m := tx.m
	m.Mins = m.PS.Mins
	m.Maxs = m.PS.Maxs
	m.Maxs[2] = maxz
	m.PS.Posture = p
	t := m.traceAll(m.PS.Origin, m.PS.Origin)
	return t.Fraction == 1
}

func (tx *postureTxn) rollback() {
	m := tx.m
	m.PS.Origin = tx.origin
	m.PS.Posture = tx.posture
	m.Mins = tx.mins
	m.Maxs = tx.maxs
}

// commit installs the new posture. The box is left as the trial set it.
func (tx *postureTxn) commit(p Posture) {
	tx.m.PS.Posture = p
}

func (m *Move) proneDelay() int32 {
	if m.Params.ProneDelay {
		return proneDelayLong
	}
	return proneDelay
}

// canEnterProne lists the reasons a player may not lie down at all.
func (m *Move) canEnterProne() bool {
	ps := m.PS
	switch {
	case ps.Ladder:
		return false
	case ps.Mount.Mounted():
		return false
	case ps.WeaponDelay != 0 && m.Loadout.Panzer:
		return false
	case m.Loadout.MortarSet:
		return false
	case m.WaterLevel > 1:
		// can't go prone while swimming
		return false
	}
	return true
}

// checkProne handles entering and leaving prone and sets the box and view
// height while prone. It reports whether the player is prone.
func (m *Move) checkProne() bool {
	ps := m.PS
	cmd := &m.Cmd
	delay := m.proneDelay()

	if !ps.Posture.Prone && m.canEnterProne() {
		wants := (ps.Posture.Ducked && cmd.DoubleTap == DTForward) || cmd.WButtons&WButtonProne != 0
		// ProneTime holds the negated time of the last exit
		if wants && cmd.ServerTime+m.Ext.ProneTime > delay {
			tx := m.beginPosture()
			trial := ps.Posture
			trial.Prone = true
			ok := tx.fits(trial, ps.CrouchMaxZ)

			if m.Params.ProneDelay {
				ps.AimSpreadScale = aimSpreadMax
			}

			if ok {
				// crouched as well
				trial.Ducked = true
				tx.commit(trial)
				m.Ext.ProneTime = cmd.ServerTime
			} else {
				tx.rollback()
			}
		}
	}

	if ps.Posture.Prone {
		wants := (cmd.DoubleTap == DTBack || cmd.Up > 10 || cmd.WButtons&WButtonProne != 0) &&
			cmd.ServerTime-m.Ext.ProneTime > delay
		if m.WaterLevel > 1 || ps.Type == Dead || ps.Mount.Mounted() || wants {
			// see if we have the space to stop prone
			tx := m.beginPosture()
			trial := ps.Posture
			trial.Prone = false
			if tx.fits(trial, ps.CrouchMaxZ) {
				// crouch for a bit
				trial.Ducked = true
				trial.ProneMoving = false
				tx.commit(trial)
				m.Ext.ProneTime = -cmd.ServerTime
				if m.Loadout.Scoped || m.Loadout.MGSet {
					// the weapon layer drops the scope when it sees
					// the player is no longer prone
					m.debugf(1, "unscope\n")
				}
				// don't jump for a bit
				m.Ext.JumpTime = cmd.ServerTime - 650
				ps.JumpTime = cmd.ServerTime - 650
			} else {
				tx.rollback()
			}
		}
	}

	if !ps.Posture.Prone {
		return false
	}

	spd := ps.Velocity.Length()
	userinput := iabs(cmd.Forward)+iabs(cmd.Right) > 10
	if userinput && spd > 40 {
		ps.Posture.ProneMoving = true
	} else if !userinput && spd < 20 {
		ps.Posture.ProneMoving = false
	}

	m.Mins = ps.Mins
	m.Maxs = ps.Maxs
	// anything lower gets players stuck in the world
	m.Maxs[2] = proneMaxZ
	ps.ViewHeight = ProneViewHeight
	return true
}

// checkDuck sets the box and view height for standing, crouching and dead
// players.
func (m *Move) checkDuck() {
	ps := m.PS
	m.Mins = ps.Mins
	m.Maxs = ps.Maxs

	if ps.Type == Dead {
		// the game sets the corpse box in ps.Maxs
		ps.ViewHeight = int32(ps.DeadViewHeight)
		return
	}

	if (m.Cmd.Up < 0 && !ps.Mount.Tank && !ps.Ladder) || m.Loadout.MortarSet {
		ps.Posture.Ducked = true
	} else if ps.Posture.Ducked {
		// try to stand up
		tx := m.beginPosture()
		trial := ps.Posture
		trial.Ducked = false
		if tx.fits(trial, ps.Maxs[2]) {
			tx.commit(trial)
		} else {
			tx.rollback()
		}
	}

	m.Mins = ps.Mins
	m.Maxs = ps.Maxs
	if ps.Posture.Ducked {
		m.Maxs[2] = ps.CrouchMaxZ
		ps.ViewHeight = int32(ps.CrouchViewHeight)
	} else {
		ps.ViewHeight = int32(ps.StandViewHeight)
	}
}

// setPostureBox sets the active box from the current posture.
func (m *Move) setPostureBox() {
	ps := m.PS
	m.Mins = ps.Mins
	m.Maxs = ps.Maxs
	switch {
	case ps.Type == Dead || ps.Posture.Dead:
	case ps.Posture.Prone:
		m.Maxs[2] = proneMaxZ
	case ps.Posture.Ducked:
		m.Maxs[2] = ps.CrouchMaxZ
	}
}
