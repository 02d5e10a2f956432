// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClampMsec(t *testing.T) {
	// command durations are clamped to 1..200 ms
	tests := []struct {
		in, want int32
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{50, 50},
		{200, 200},
		{1000, 200},
	}
	for _, tc := range tests {
		if got := Clamp(1, tc.in, 200); got != tc.want {
			t.Errorf("Clamp(1,%v,200) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampPitch(t *testing.T) {
	if got := Clamp[float32](-89, 95.5, 89); got != 89 {
		t.Errorf("Clamp(-89,95.5,89) = %v", got)
	}
	if got := Clamp[float32](-89, -12.25, 89); got != -12.25 {
		t.Errorf("Clamp(-89,-12.25,89) = %v", got)
	}
}
