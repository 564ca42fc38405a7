package rtc

import (
	"github.com/omzlo/pivoyager-firmware/calendar"
	"github.com/omzlo/pivoyager-firmware/errcode"
)

// Sim is a calendar driven by a millisecond time source, for the host
// simulator and tests.
type Sim struct {
	now func() uint32

	// Stopped models a lost backup supply: Init resets the calendar.
	Stopped bool
	// Failure injection for Init and SetCalendar.
	FailOscillator, FailInit, FailWrites bool

	base    uint32 // epoch seconds at now() == 0
	alarm   calendar.Alarm
	armed   bool
	fireAt  uint32
	pending bool
}

// NewSim starts the calendar at epoch seconds start.
func NewSim(now func() uint32, start uint32) *Sim {
	s := &Sim{now: now}
	s.base = start - now()/1000
	return s
}

func (s *Sim) seconds() uint32 { return s.base + s.now()/1000 }

func (s *Sim) Init() (InitResult, error) {
	if s.FailOscillator {
		return 0, &errcode.E{C: errcode.OscillatorTimeout, Op: "rtc.init"}
	}
	if s.Stopped {
		if s.FailInit {
			return 0, &errcode.E{C: errcode.CalendarInitTimeout, Op: "rtc.init"}
		}
		s.Stopped = false
		s.base = calendar.MinSeconds - s.now()/1000
		s.armed, s.pending = false, false
		return Reset, nil
	}
	s.pending = false
	return Running, nil
}

func (s *Sim) Now() (calendar.Date, calendar.Time, error) {
	d, t := calendar.FromSeconds(s.seconds())
	return d, t, nil
}

func (s *Sim) SetCalendar(d calendar.Date, t calendar.Time) error {
	if s.FailWrites {
		return &errcode.E{C: errcode.CalendarWriteTimeout, Op: "rtc.set"}
	}
	s.base = calendar.ToSeconds(d, t) - s.now()/1000
	if s.armed {
		s.fireAt, s.armed = nextMatch(s.seconds(), s.alarm)
	}
	return nil
}

func (s *Sim) SetAlarm(a calendar.Alarm) error {
	s.alarm = a
	s.pending = false
	s.fireAt, s.armed = nextMatch(s.seconds(), a)
	return nil
}

func (s *Sim) ClearAlarm() error {
	s.poll()
	s.pending = false
	return nil
}

func (s *Sim) Flags() (Flags, error) {
	s.poll()
	return Flags{Initialized: !s.Stopped, AlarmPending: s.pending}, nil
}

// AlarmAt reports when the armed alarm fires next, in epoch seconds.
func (s *Sim) AlarmAt() (uint32, bool) { return s.fireAt, s.armed }

// Seconds returns the current calendar as epoch seconds.
func (s *Sim) Seconds() uint32 { return s.seconds() }

func (s *Sim) poll() {
	if s.armed && s.seconds() >= s.fireAt {
		s.pending = true
		s.fireAt, s.armed = nextMatch(s.fireAt+1, s.alarm)
	}
}

// nextMatch finds the first second at or after from whose day of month and
// time of day equal the alarm's.
func nextMatch(from uint32, a calendar.Alarm) (uint32, bool) {
	const day = 86400
	tod := a.Time().Seconds()
	for i := uint32(0); i < 62; i++ {
		start := (from/day + i) * day
		d, _ := calendar.FromSeconds(start)
		if d.Day() != a.Day() {
			continue
		}
		if at := start + tod; at >= from {
			return at, true
		}
	}
	return 0, false
}
