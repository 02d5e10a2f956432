// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"

	"etmove/math"
	"etmove/pmove"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultMsec = 16

type loadoutDef struct {
	Heavy        bool    `yaml:"heavy"`
	Flamethrower bool    `yaml:"flamethrower"`
	MortarSet    bool    `yaml:"mortarset"`
	MGSet        bool    `yaml:"mgset"`
	Scoped       bool    `yaml:"scoped"`
	Panzer       bool    `yaml:"panzer"`
	Reloading    bool    `yaml:"reloading"`
	HeavySkill   bool    `yaml:"heavyskill"`
	BattleSense  bool    `yaml:"battlesense"`
	SpeedScale   float32 `yaml:"speedscale"`
}

type stepDef struct {
	Msec    int32      `yaml:"msec"`
	Forward int8       `yaml:"forward"`
	Right   int8       `yaml:"right"`
	Up      int8       `yaml:"up"`
	Angles  [3]float32 `yaml:"angles"`
	Buttons []string   `yaml:"buttons"`
	Weapon  uint8      `yaml:"weapon"`
	Repeat  int        `yaml:"repeat"`
}

type scriptDef struct {
	Loadout  loadoutDef `yaml:"loadout"`
	Commands []stepDef  `yaml:"commands"`
}

// script is the input of one simulation.
type script struct {
	Loadout pmove.Loadout
	Cmds    []pmove.UserCmd
}

var buttonNames = map[string]struct {
	weapon bool
	bit    uint8
}{
	"attack":  {false, pmove.ButtonAttack},
	"talk":    {false, pmove.ButtonTalk},
	"walk":    {false, pmove.ButtonWalking},
	"sprint":  {false, pmove.ButtonSprint},
	"attack2": {true, pmove.WButtonAttack2},
	"zoom":    {true, pmove.WButtonZoom},
	"prone":   {true, pmove.WButtonProne},
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read script %s", path)
	}
	s, err := parseScript(data)
	if err != nil {
		return nil, errors.Wrapf(err, "script %s", path)
	}
	return s, nil
}

func parseScript(data []byte) (*script, error) {
	var def scriptDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "could not parse script")
	}
	ld := def.Loadout
	s := &script{
		Loadout: pmove.Loadout{
			Heavy:        ld.Heavy,
			Flamethrower: ld.Flamethrower,
			MortarSet:    ld.MortarSet,
			MGSet:        ld.MGSet,
			Scoped:       ld.Scoped,
			Panzer:       ld.Panzer,
			Reloading:    ld.Reloading,
			HeavySkill:   ld.HeavySkill,
			BattleSense:  ld.BattleSense,
			SpeedScale:   ld.SpeedScale,
		},
	}
	var now int32
	for i, st := range def.Commands {
		cmd, err := st.cmd()
		if err != nil {
			return nil, errors.Wrapf(err, "command %d", i)
		}
		msec := st.Msec
		if msec == 0 {
			msec = defaultMsec
		}
		if msec < 0 {
			return nil, errors.Errorf("command %d: negative msec %d", i, msec)
		}
		n := st.Repeat
		if n == 0 {
			n = 1
		}
		for ; n > 0; n-- {
			now += msec
			cmd.ServerTime = now
			s.Cmds = append(s.Cmds, cmd)
		}
	}
	return s, nil
}

func (st *stepDef) cmd() (pmove.UserCmd, error) {
	cmd := pmove.UserCmd{
		Forward: st.Forward,
		Right:   st.Right,
		Up:      st.Up,
		Weapon:  st.Weapon,
	}
	for i, a := range st.Angles {
		cmd.Angles[i] = math.Angle2Short(a)
	}
	for _, name := range st.Buttons {
		b, ok := buttonNames[name]
		if !ok {
			return cmd, errors.Errorf("unknown button %q", name)
		}
		if b.weapon {
			cmd.WButtons |= b.bit
		} else {
			cmd.Buttons |= b.bit
		}
	}
	return cmd, nil
}
