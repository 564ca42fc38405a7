package power

import (
	"github.com/omzlo/pivoyager-firmware/calendar"
	"github.com/omzlo/pivoyager-firmware/command"
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/rtc"
	"github.com/omzlo/pivoyager-firmware/x/timex"
)

const (
	// ADCPeriod is the battery sampling interval, ms.
	ADCPeriod = 1000
	// LongPressDelay lets the status LED settle before standby, ms.
	LongPressDelay = 100
)

// Counters exposes the bus transaction counters.
type Counters interface {
	RX() uint32
	TX() uint32
}

// shadow is the configuration latched from the register file when a host
// write completes. Timeouts are compared against it, never against the
// live registers the host may be rewriting.
type shadow struct {
	conf  uint8
	watch uint16
	wake  uint16
	lbo   uint16
}

// Sequencer is the application main loop. Call Start once, then Tick from
// the driving loop.
type Sequencer struct {
	file *i2cslave.RegisterFile
	bus  Counters
	poll *command.Poller
	b    Board
	log  Logger

	cfg      shadow
	button   Button
	buttonSt uint8 // StatButton latch
	ledST    Pattern
	wd       Watchdog
	lbo      LBOTimer

	lastTX   uint32
	pinLevel bool

	adcLast    uint32
	adcPending bool

	asleep bool
}

func New(file *i2cslave.RegisterFile, bus Counters, b Board, log Logger) *Sequencer {
	return &Sequencer{
		file: file,
		bus:  bus,
		b:    b,
		log:  log,
		poll: command.NewPoller(file, bus, command.Config{
			Opcode:  FieldProg,
			Err:     FieldErr,
			Bitwise: true,
		}),
		ledST:  PatternOn,
		lastTX: bus.TX(),
	}
}

// Start powers the host, brings up the calendar and publishes the initial
// registers. An error means the calendar cannot be trusted and is fatal.
func (s *Sequencer) Start() error {
	s.b.Enable.Set(true)
	s.b.ADCEnable.Set(false)

	res, err := s.b.RTC.Init()
	if err != nil {
		s.log.Printf("[power] rtc init failed: code=%d\n", int8(errcode.Of(err)))
		return err
	}
	if res == rtc.Reset {
		s.log.Printf("[power] rtc: calendar was reset\n")
	} else {
		s.log.Printf("[power] rtc: calendar already initialized\n")
	}

	s.file.Atomic(func(tx i2cslave.Tx) {
		raw := tx.Raw(i2cslave.Field{Off: 0, Width: Size})
		for i := range raw {
			raw[i] = 0
		}
		tx.SetU8(FieldMode, Mode)
		tx.SetU16(FieldBoot, s.b.BootReason)
		tx.SetU16(FieldVRefCal, s.b.VRefCal)
	})
	now := s.b.Clock.Now()
	s.pinLevel = s.b.WatchdogPin.Get()
	s.adcLast = now
	s.wd.Configure(0, now)
	return nil
}

// Asleep reports that standby was entered. Only reachable where the
// Sleeper returns, i.e. in simulation.
func (s *Sequencer) Asleep() bool { return s.asleep }

// Tick runs one iteration of the control loop.
func (s *Sequencer) Tick() {
	if s.asleep {
		return
	}
	now := s.b.Clock.Now()

	flags, err := s.b.RTC.Flags()
	if err != nil {
		s.log.Printf("[power] rtc flags: %v\n", err)
	}
	stat := s.readStatus(flags)

	pressed := !s.b.Button.Get()
	switch s.button.Update(pressed, now) {
	case EventShortPress:
		s.buttonSt = StatButton
		s.log.Printf("[power] short press\n")
	case EventMaintained:
		s.ledST = PatternFast
	case EventLongPress:
		s.ledST = PatternOn
		s.b.LedST.Set(true)
		s.log.Printf("[power] long press\n")
		s.b.Clock.Delay(LongPressDelay)
		s.standby("button")
		return
	}

	cmd, ok := s.poll.Poll()
	if s.poll.Activity() {
		s.latchConfig(now)
		s.wd.BusActivity(now)
	}
	if ok {
		s.poll.Complete(cmd, s.execute(cmd))
	}
	if tx := s.bus.TX(); tx != s.lastTX {
		s.lastTX = tx
		s.wd.BusActivity(now)
	}
	if lvl := s.b.WatchdogPin.Get(); lvl != s.pinLevel {
		s.pinLevel = lvl
		s.wd.PinActivity(now)
	}

	s.updateADC(now)
	s.publish(stat | s.buttonSt)
	s.updateLEDs(Code(stat), now)

	s.lbo.Update(Code(stat), now)
	if s.cfg.conf&ConfLBOShutdown != 0 && s.lbo.Expired(now, s.cfg.lbo) {
		s.standby("low battery")
		return
	}
	if s.wd.Expired(now, s.cfg.watch) {
		s.standby("watchdog")
	}
}

func (s *Sequencer) readStatus(f rtc.Flags) uint8 {
	var stat uint8
	if s.b.PG.Get() {
		stat |= StatPG
	}
	if s.b.Stat1.Get() {
		stat |= StatStat1
	}
	if s.b.Stat2.Get() {
		stat |= StatStat2
	}
	if s.b.PG2.Get() {
		stat |= StatPG2
	}
	if f.Initialized {
		stat |= StatInits
	}
	if f.AlarmPending {
		stat |= StatAlarm
	}
	return stat
}

// latchConfig copies the host configuration into the shadow in one
// critical section.
func (s *Sequencer) latchConfig(now uint32) {
	var c shadow
	s.file.Atomic(func(tx i2cslave.Tx) {
		c = shadow{
			conf:  tx.U8(FieldConf),
			watch: tx.U16(FieldWatch),
			wake:  tx.U16(FieldWake),
			lbo:   tx.U16(FieldLBOTimer),
		}
	})
	if c.conf != s.cfg.conf {
		s.log.Printf("[power] conf %x -> %x\n", s.cfg.conf, c.conf)
	}
	s.cfg = c
	s.wd.Configure(c.conf, now)
}

// execute runs the requested actions in their fixed order. The first
// failure is reported; later actions still run.
func (s *Sequencer) execute(cmd command.Command) errcode.Code {
	code := errcode.OK
	for _, bit := range progOrder {
		if !cmd.Has(bit) {
			continue
		}
		if c := s.action(bit); c != errcode.OK && code == errcode.OK {
			code = c
		}
	}
	return code
}

func (s *Sequencer) action(bit byte) errcode.Code {
	switch bit {
	case ProgSetCalendar:
		var d calendar.Date
		var t calendar.Time
		s.file.Atomic(func(tx i2cslave.Tx) {
			d = calendar.Date(tx.U32(FieldSetDate))
			t = calendar.Time(tx.U32(FieldSetTime))
		})
		if err := s.b.RTC.SetCalendar(d, t); err != nil {
			s.log.Printf("[power] set calendar: %v\n", err)
			return errcode.Of(err)
		}
		s.log.Printf("[power] calendar set %x %x\n", uint32(d), uint32(t))
	case ProgClearAlarm:
		if err := s.b.RTC.ClearAlarm(); err != nil {
			return errcode.Of(err)
		}
	case ProgSetAlarm:
		a := calendar.Alarm(s.file.U32(FieldAlarm))
		if err := s.b.RTC.SetAlarm(a); err != nil {
			s.log.Printf("[power] set alarm: %v\n", err)
			return errcode.Of(err)
		}
		s.log.Printf("[power] alarm set %x\n", uint32(a))
	case ProgClearButton:
		s.buttonSt = 0
	}
	return errcode.OK
}

// updateADC raises the divider enable on one tick and samples on the
// next, once per ADCPeriod.
func (s *Sequencer) updateADC(now uint32) {
	if !s.adcPending {
		if timex.Since(now, s.adcLast) >= ADCPeriod {
			s.b.ADCEnable.Set(true)
			s.adcPending = true
		}
		return
	}
	vbat, vref := s.b.ADC.Sample()
	s.b.ADCEnable.Set(false)
	s.adcPending = false
	s.adcLast = now
	s.file.Atomic(func(tx i2cslave.Tx) {
		tx.SetU16(FieldVBat, vbat)
		tx.SetU16(FieldVRef, vref)
	})
}

func (s *Sequencer) publish(stat uint8) {
	d, t, err := s.b.RTC.Now()
	s.file.Atomic(func(tx i2cslave.Tx) {
		tx.SetU8(FieldStat, stat)
		if err == nil {
			tx.SetU32(FieldTime, uint32(t))
			tx.SetU32(FieldDate, uint32(d))
		}
	})
}

func (s *Sequencer) updateLEDs(c StatusCode, now uint32) {
	s.b.LedST.Set(s.ledST.Level(now))
	if pg, ch, ok := LEDPatterns(c); ok {
		s.b.LedPG.Set(pg.Level(now))
		s.b.LedCH.Set(ch.Level(now))
	}
}
