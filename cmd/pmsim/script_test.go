// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"testing"

	"etmove/pmove"

	"github.com/stretchr/testify/require"
)

const testScript = `
loadout:
  battlesense: true
  speedscale: 0.9
commands:
  - forward: 127
    angles: [0, 90, 0]
    buttons: [sprint, prone]
    repeat: 3
  - msec: 50
    up: 127
`

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte(testScript))
	require.NoError(t, err)
	require.Equal(t, pmove.Loadout{BattleSense: true, SpeedScale: 0.9}, s.Loadout)
	require.Len(t, s.Cmds, 4)

	times := []int32{16, 32, 48, 98}
	for i, cmd := range s.Cmds {
		if cmd.ServerTime != times[i] {
			t.Errorf("cmd %d: time %d, want %d", i, cmd.ServerTime, times[i])
		}
	}
	first := s.Cmds[0]
	require.Equal(t, int8(127), first.Forward)
	require.Equal(t, [3]int32{0, 16384, 0}, first.Angles)
	require.Equal(t, uint8(pmove.ButtonSprint), first.Buttons)
	require.Equal(t, uint8(pmove.WButtonProne), first.WButtons)
	require.Equal(t, int8(127), s.Cmds[3].Up)
	require.Zero(t, s.Cmds[3].Buttons)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"button", "commands:\n  - buttons: [jump]\n"},
		{"msec", "commands:\n  - msec: -5\n"},
		{"yaml", "commands: [\n"},
		{"range", "commands:\n  - forward: 300\n"},
	}
	for _, tc := range tests {
		if _, err := parseScript([]byte(tc.script)); err == nil {
			t.Errorf("%s: want error", tc.name)
		}
	}
}
