// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"etmove/conlog"
	"etmove/cvar"
	"etmove/pmove"
)

var (
	Developer       *cvar.Cvar
	ErrorDecay      *cvar.Cvar
	FixedPhysics    *cvar.Cvar
	FixedPhysicsFPS *cvar.Cvar
	Gravity         *cvar.Cvar
	PmoveDebug      *cvar.Cvar
	PmoveFixed      *cvar.Cvar
	PmoveMsec       *cvar.Cvar
	ProneDelay      *cvar.Cvar
	ShowMiss        *cvar.Cvar
	Speed           *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	ErrorDecay = cvar.MustRegister("cg_errorDecay", "100", cvar.NONE)
	FixedPhysics = cvar.MustRegister("g_fixedphysics", "1", cvar.ARCHIVE|cvar.SERVERINFO)
	FixedPhysicsFPS = cvar.MustRegister("g_fixedphysicsfps", "125", cvar.ARCHIVE|cvar.SERVERINFO)
	Gravity = cvar.MustRegister("g_gravity", "800", cvar.NONE)
	PmoveDebug = cvar.MustRegister("pmove_debug", "0", cvar.CHEAT)
	PmoveFixed = cvar.MustRegister("pmove_fixed", "0", cvar.SERVERINFO)
	PmoveMsec = cvar.MustRegister("pmove_msec", "8", cvar.SERVERINFO)
	ProneDelay = cvar.MustRegister("g_pronedelay", "0", cvar.ARCHIVE|cvar.SERVERINFO)
	ShowMiss = cvar.MustRegister("cg_showmiss", "0", cvar.NONE)
	Speed = cvar.MustRegister("g_speed", "320", cvar.NONE)

	ErrorDecay.SetBounds(0, 500)
	PmoveMsec.SetBounds(8, 33)
	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
}

// MoveParams collects the movement tunables.
func MoveParams() pmove.Params {
	return pmove.Params{
		Fixed:           PmoveFixed.Bool(),
		FixedMsec:       PmoveMsec.Int(),
		ProneDelay:      ProneDelay.Bool(),
		FixedPhysics:    FixedPhysics.Bool(),
		FixedPhysicsFPS: FixedPhysicsFPS.Int(),
	}
}

// ApplyTo copies the server side player tunables into ps the way the game
// does before every move.
func ApplyTo(ps *pmove.PlayerState) {
	ps.Gravity = Gravity.Int()
	ps.Speed = Speed.Int()
}
