// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

// Event is a predictable entity event produced by movement.
type Event uint8

const (
	EventNone Event = iota
	EventFootstep
	EventStep4
	EventStep8
	EventStep12
	EventStep16
	EventFallShort
	EventFallDmg10
	EventFallDmg15
	EventFallDmg25
	EventFallDmg50
	EventFallNDie
	EventWaterTouch
	EventWaterLeave
	EventWaterUnder
	EventWaterClear
)

var eventNames = [...]string{
	EventNone:       "none",
	EventFootstep:   "footstep",
	EventStep4:      "step_4",
	EventStep8:      "step_8",
	EventStep12:     "step_12",
	EventStep16:     "step_16",
	EventFallShort:  "fall_short",
	EventFallDmg10:  "fall_dmg_10",
	EventFallDmg15:  "fall_dmg_15",
	EventFallDmg25:  "fall_dmg_25",
	EventFallDmg50:  "fall_dmg_50",
	EventFallNDie:   "fall_ndie",
	EventWaterTouch: "water_touch",
	EventWaterLeave: "water_leave",
	EventWaterUnder: "water_under",
	EventWaterClear: "water_clear",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

func stepEvent(delta float32) Event {
	switch {
	case delta < 7:
		return EventStep4
	case delta < 11:
		return EventStep8
	case delta < 15:
		return EventStep12
	}
	return EventStep16
}

// AnimEvent is a trigger for the animation scripts.
type AnimEvent uint8

const (
	AnimJump AnimEvent = iota + 1
	AnimJumpBack
	AnimLand
	AnimClimbMount
	AnimClimbDismount
)

var animNames = [...]string{
	AnimJump:          "jump",
	AnimJumpBack:      "jumpbk",
	AnimLand:          "land",
	AnimClimbMount:    "climb_mount",
	AnimClimbDismount: "climb_dismount",
}

func (a AnimEvent) String() string {
	if int(a) < len(animNames) && animNames[a] != "" {
		return animNames[a]
	}
	return "unknown"
}

const maxAnimEvents = 8

// AnimEvents collects the triggers of one Run. Overflowing triggers are
// dropped.
type AnimEvents struct {
	events [maxAnimEvents]AnimEvent
	n      int
}

func (a *AnimEvents) add(e AnimEvent) {
	if a.n == maxAnimEvents {
		return
	}
	a.events[a.n] = e
	a.n++
}

func (a *AnimEvents) All() []AnimEvent {
	return a.events[:a.n]
}

func (a *AnimEvents) Reset() {
	a.n = 0
}
