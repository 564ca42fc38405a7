package power

import "github.com/omzlo/pivoyager-firmware/x/timex"

// Button timing, ms.
const (
	ShortPressMin = 40
	LongPressMin  = 3000
)

type ButtonState uint8

const (
	ButtonIdle ButtonState = iota
	ButtonPressed
	ButtonMaintained
)

type ButtonEvent uint8

const (
	EventNone ButtonEvent = iota
	EventShortPress
	EventMaintained // held past LongPressMin, still down
	EventLongPress  // released after EventMaintained
)

func (e ButtonEvent) String() string {
	switch e {
	case EventShortPress:
		return "short press"
	case EventMaintained:
		return "maintained"
	case EventLongPress:
		return "long press"
	default:
		return "none"
	}
}

// Button debounces by elapsed time: presses shorter than ShortPressMin are
// ignored.
type Button struct {
	state ButtonState
	since uint32
}

func (b *Button) State() ButtonState { return b.state }

// Update advances the machine with the sampled pressed level at now.
func (b *Button) Update(pressed bool, now uint32) ButtonEvent {
	switch b.state {
	case ButtonIdle:
		if pressed {
			b.state = ButtonPressed
			b.since = now
		}
	case ButtonPressed:
		held := timex.Since(now, b.since)
		if pressed {
			if held >= LongPressMin {
				b.state = ButtonMaintained
				return EventMaintained
			}
			return EventNone
		}
		b.state = ButtonIdle
		if held >= ShortPressMin {
			return EventShortPress
		}
	case ButtonMaintained:
		if !pressed {
			b.state = ButtonIdle
			return EventLongPress
		}
	}
	return EventNone
}
