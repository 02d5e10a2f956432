// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

const (
	ButtonAttack  = 1 << 0
	ButtonTalk    = 1 << 1
	ButtonWalking = 1 << 4
	ButtonSprint  = 1 << 5
)

const (
	WButtonAttack2 = 1 << 0
	WButtonZoom    = 1 << 1
	WButtonProne   = 1 << 7
)

type DoubleTap uint8

const (
	DTNone DoubleTap = iota
	DTMoveLeft
	DTMoveRight
	DTForward
	DTBack
	DTLeanLeft
	DTLeanRight
	DTUp
)

// UserCmd is one input sample of a client.
type UserCmd struct {
	ServerTime int32
	Angles     [3]int32
	Forward    int8
	Right      int8
	Up         int8
	Buttons    uint8
	WButtons   uint8
	DoubleTap  DoubleTap
	Weapon     uint8
}
