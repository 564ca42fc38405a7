package rtc

import (
	"github.com/omzlo/pivoyager-firmware/calendar"
	"github.com/omzlo/pivoyager-firmware/drivers/ds3231"
	"github.com/omzlo/pivoyager-firmware/errcode"
)

// DefaultPolls bounds every busy-wait on the chip.
const DefaultPolls = 1000

// DS3231 drives an external DS3231 through its register-level driver.
type DS3231 struct {
	dev   *ds3231.Device
	polls int
}

func NewDS3231(dev *ds3231.Device, polls int) *DS3231 {
	if polls <= 0 {
		polls = DefaultPolls
	}
	return &DS3231{dev: dev, polls: polls}
}

// Init keeps a running calendar and clears stale alarm state. A stopped
// oscillator means the backup supply was lost: the oscillator is restarted
// and the calendar reset to 2000-01-01 00:00:00.
func (c *DS3231) Init() (InitResult, error) {
	stopped, err := c.dev.OscillatorStopped()
	if err != nil {
		return 0, &errcode.E{C: errcode.OscillatorTimeout, Op: "rtc.init", Err: err}
	}
	if !stopped {
		if err := c.dev.EnableAlarm1Interrupt(false); err != nil {
			return 0, &errcode.E{C: errcode.CalendarInitTimeout, Op: "rtc.init", Err: err}
		}
		if err := c.dev.ClearAlarm1(); err != nil {
			return 0, &errcode.E{C: errcode.CalendarInitTimeout, Op: "rtc.init", Err: err}
		}
		return Running, nil
	}

	if err := c.dev.StartOscillator(); err != nil {
		return 0, &errcode.E{C: errcode.OscillatorTimeout, Op: "rtc.init", Err: err}
	}
	if !c.wait(func() (bool, error) { s, err := c.dev.OscillatorStopped(); return !s, err }) {
		return 0, &errcode.E{C: errcode.OscillatorTimeout, Op: "rtc.init", Msg: "oscillator did not start"}
	}

	d, t := calendar.FromSeconds(calendar.MinSeconds)
	if err := c.write(d, t); err != nil {
		return 0, &errcode.E{C: errcode.CalendarInitTimeout, Op: "rtc.init", Err: err}
	}
	if !c.wait(func() (bool, error) { b, err := c.dev.Busy(); return !b, err }) {
		return 0, &errcode.E{C: errcode.CalendarInitTimeout, Op: "rtc.init", Msg: "calendar busy"}
	}
	return Reset, nil
}

// wait polls cond until it holds, an error occurs or the budget runs out.
func (c *DS3231) wait(cond func() (bool, error)) bool {
	for i := 0; i < c.polls; i++ {
		ok, err := cond()
		if err != nil {
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

func (c *DS3231) Now() (calendar.Date, calendar.Time, error) {
	r, err := c.dev.ReadCalendar()
	if err != nil {
		return 0, 0, err
	}
	d := calendar.Date(uint32(r.Year)<<16 | uint32(r.Weekday)<<13 | uint32(r.Month)<<8 | uint32(r.Date))
	t := calendar.Time(uint32(r.Hours)<<16 | uint32(r.Minutes)<<8 | uint32(r.Seconds))
	return d, t, nil
}

func (c *DS3231) write(d calendar.Date, t calendar.Time) error {
	return c.dev.WriteCalendar(ds3231.Calendar{
		Seconds: uint8(t),
		Minutes: uint8(t >> 8),
		Hours:   uint8(t >> 16),
		Weekday: uint8(d>>13) & 7,
		Date:    uint8(d),
		Month:   uint8(d>>8) & 0x1F,
		Year:    uint8(d >> 16),
	})
}

func (c *DS3231) SetCalendar(d calendar.Date, t calendar.Time) error {
	if err := c.write(d, t); err != nil {
		return &errcode.E{C: errcode.CalendarWriteTimeout, Op: "rtc.set", Err: err}
	}
	return nil
}

// SetAlarm programs a day-of-month alarm and routes it to the wake pin. A
// stale match flag is cleared first, otherwise INT stays asserted and the
// new alarm never produces an edge.
func (c *DS3231) SetAlarm(a calendar.Alarm) error {
	if err := c.dev.EnableAlarm1Interrupt(false); err != nil {
		return err
	}
	err := c.dev.SetAlarm1(ds3231.Alarm1{
		Seconds: uint8(a),
		Minutes: uint8(a >> 8),
		Hours:   uint8(a >> 16),
		Date:    uint8(a >> 24),
	})
	if err != nil {
		return err
	}
	if err := c.dev.ClearAlarm1(); err != nil {
		return err
	}
	return c.dev.EnableAlarm1Interrupt(true)
}

func (c *DS3231) ClearAlarm() error { return c.dev.ClearAlarm1() }

func (c *DS3231) Flags() (Flags, error) {
	stopped, err := c.dev.OscillatorStopped()
	if err != nil {
		return Flags{}, err
	}
	fired, err := c.dev.Alarm1Fired()
	return Flags{Initialized: !stopped, AlarmPending: fired}, err
}
