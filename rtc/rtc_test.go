package rtc

import (
	"errors"
	"testing"

	"github.com/omzlo/pivoyager-firmware/calendar"
	"github.com/omzlo/pivoyager-firmware/drivers/ds3231"
	"github.com/omzlo/pivoyager-firmware/errcode"
)

const (
	regControl = 0x0E
	regStatus  = 0x0F
	osf        = 0x80
	a1f        = 0x01
)

type chipBus struct {
	regs      [0x13]byte
	ptr       byte
	stuckOSF  bool
	failAfter int // fail every Tx after this many; 0 = never
	n         int
}

func (b *chipBus) Tx(_ uint16, w, r []byte) error {
	b.n++
	if b.failAfter > 0 && b.n > b.failAfter {
		return errors.New("nack")
	}
	if len(w) > 0 {
		b.ptr = w[0]
		for _, v := range w[1:] {
			b.regs[b.ptr] = v
			b.ptr++
		}
		if b.stuckOSF {
			b.regs[regStatus] |= osf
		}
	}
	for i := range r {
		r[i] = b.regs[b.ptr]
		b.ptr++
	}
	return nil
}

func newChip(bus *chipBus) *DS3231 {
	return NewDS3231(ds3231.New(bus, ds3231.Config{}), 10)
}

func TestDS3231InitRunning(t *testing.T) {
	bus := &chipBus{}
	bus.regs[regControl] = 0x05 // INTCN | A1IE
	bus.regs[regStatus] = a1f
	res, err := newChip(bus).Init()
	if err != nil || res != Running {
		t.Fatalf("Init = %v, %v", res, err)
	}
	if bus.regs[regStatus]&a1f != 0 || bus.regs[regControl]&0x01 != 0 {
		t.Fatalf("stale alarm state: control %#x status %#x", bus.regs[regControl], bus.regs[regStatus])
	}
}

func TestDS3231InitAfterPowerLoss(t *testing.T) {
	bus := &chipBus{}
	bus.regs[regStatus] = osf
	bus.regs[0x06] = 0x42 // garbage year
	c := newChip(bus)
	res, err := c.Init()
	if err != nil || res != Reset {
		t.Fatalf("Init = %v, %v", res, err)
	}
	d, tm, _ := c.Now()
	if d.Year() != 2000 || d.Month() != 1 || d.Day() != 1 || d.Weekday() != 6 || tm != 0 {
		t.Fatalf("calendar after reset %06x %06x", uint32(d), uint32(tm))
	}
	if f, _ := c.Flags(); !f.Initialized {
		t.Fatal("calendar not reported initialized")
	}
}

func TestDS3231InitFailures(t *testing.T) {
	bus := &chipBus{stuckOSF: true}
	bus.regs[regStatus] = osf
	_, err := newChip(bus).Init()
	if errcode.Of(err) != errcode.OscillatorTimeout {
		t.Fatalf("stuck oscillator: %v", err)
	}

	// status read, control rmw, status rmw, poll; then the calendar write fails
	bus = &chipBus{failAfter: 6}
	bus.regs[regStatus] = osf
	_, err = newChip(bus).Init()
	if errcode.Of(err) != errcode.CalendarInitTimeout {
		t.Fatalf("calendar write failure: %v", err)
	}
}

func TestDS3231CalendarAndAlarm(t *testing.T) {
	bus := &chipBus{}
	c := newChip(bus)
	d, tm := calendar.FromSeconds(1876176000 + 3723) // 2029-06-15 01:02:03
	if err := c.SetCalendar(d, tm); err != nil {
		t.Fatal(err)
	}
	gd, gt, err := c.Now()
	if err != nil || gd != d || gt != tm {
		t.Fatalf("Now = %06x %06x %v", uint32(gd), uint32(gt), err)
	}

	if err := c.SetAlarm(calendar.ToAlarm(d, tm)); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x03, 0x02, 0x01, 0x15}
	for i, b := range want {
		if bus.regs[0x07+i] != b {
			t.Fatalf("alarm reg %d = %#x want %#x", i, bus.regs[0x07+i], b)
		}
	}
	if bus.regs[regControl]&0x05 != 0x05 {
		t.Fatalf("alarm interrupt not routed: %#x", bus.regs[regControl])
	}

	bus.regs[regStatus] |= a1f
	if f, _ := c.Flags(); !f.AlarmPending {
		t.Fatal("alarm flag not reported")
	}
	c.ClearAlarm()
	if f, _ := c.Flags(); f.AlarmPending {
		t.Fatal("alarm flag not cleared")
	}

	bus.failAfter = bus.n
	if errcode.Of(c.SetCalendar(d, tm)) != errcode.CalendarWriteTimeout {
		t.Fatal("bus failure not mapped to CalendarWriteTimeout")
	}
}

func TestSimAlarm(t *testing.T) {
	var ms uint32
	s := NewSim(func() uint32 { return ms }, 1876176000) // 2029-06-15 00:00:00
	d, tm, _ := s.Now()
	s.SetAlarm(calendar.After(d, tm, 90))

	ms = 89_000
	if f, _ := s.Flags(); f.AlarmPending {
		t.Fatal("alarm fired early")
	}
	ms = 90_000
	if f, _ := s.Flags(); !f.AlarmPending {
		t.Fatal("alarm did not fire")
	}
	s.ClearAlarm()
	if f, _ := s.Flags(); f.AlarmPending {
		t.Fatal("alarm flag survived clear")
	}
	// Day-of-month alarms repeat the next month.
	if at, ok := s.AlarmAt(); !ok || at <= 1876176000+90 {
		t.Fatalf("next alarm %d %v", at, ok)
	}
}

func TestSimInit(t *testing.T) {
	var ms uint32 = 5000
	s := NewSim(func() uint32 { return ms }, 1876176000)
	if res, err := s.Init(); err != nil || res != Running {
		t.Fatalf("Init = %v %v", res, err)
	}
	if s.Seconds() != 1876176000 {
		t.Fatalf("running calendar moved: %d", s.Seconds())
	}

	s.Stopped = true
	if res, _ := s.Init(); res != Reset || s.Seconds() != calendar.MinSeconds {
		t.Fatalf("reset: %v %d", res, s.Seconds())
	}

	s.Stopped, s.FailInit = true, true
	if _, err := s.Init(); errcode.Of(err) != errcode.CalendarInitTimeout {
		t.Fatalf("FailInit: %v", err)
	}
	s.FailOscillator = true
	if _, err := s.Init(); errcode.Of(err) != errcode.OscillatorTimeout {
		t.Fatalf("FailOscillator: %v", err)
	}
}

func TestSetAlarmClearsStaleMatch(t *testing.T) {
	bus := &chipBus{}
	c := newChip(bus)
	bus.regs[regStatus] |= a1f
	d, tm := calendar.FromSeconds(1876176000)
	if err := c.SetAlarm(calendar.ToAlarm(d, tm)); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regStatus]&a1f != 0 {
		t.Fatal("stale A1F left set; INT would stay low")
	}
	if bus.regs[regControl]&0x05 != 0x05 {
		t.Fatalf("alarm interrupt not routed: %#x", bus.regs[regControl])
	}

	var ms uint32
	s := NewSim(func() uint32 { return ms }, 1876176000)
	s.SetAlarm(calendar.After(d, tm, 1))
	ms = 1000
	if f, _ := s.Flags(); !f.AlarmPending {
		t.Fatal("sim alarm did not fire")
	}
	s.SetAlarm(calendar.After(d, tm, 60))
	if f, _ := s.Flags(); f.AlarmPending {
		t.Fatal("sim kept the old match after re-arming")
	}
}
