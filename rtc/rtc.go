// Package rtc adapts real-time clock hardware to the packed calendar
// registers used by the power sequencer.
package rtc

import "github.com/omzlo/pivoyager-firmware/calendar"

// InitResult tells whether the calendar survived since the last start.
type InitResult int8

const (
	Running InitResult = 0 // calendar kept running, e.g. after standby
	Reset   InitResult = 1 // clock domain was reset, calendar restarted
)

// Flags mirrors the status bits published in STAT.
type Flags struct {
	Initialized  bool // calendar holds a valid time
	AlarmPending bool // alarm matched and not yet cleared
}

// Clock is the calendar collaborator of the power sequencer.
//
// Init failures are fatal to the firmware and carry
// errcode.OscillatorTimeout or errcode.CalendarInitTimeout. SetCalendar
// failures carry errcode.CalendarWriteTimeout. SetAlarm also clears a
// pending match.
type Clock interface {
	Init() (InitResult, error)
	Now() (calendar.Date, calendar.Time, error)
	SetCalendar(d calendar.Date, t calendar.Time) error
	SetAlarm(a calendar.Alarm) error
	ClearAlarm() error
	Flags() (Flags, error)
}
