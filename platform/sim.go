//go:build !tinygo

package platform

import (
	"errors"
	"io"
	"sort"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/console"
	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/power"
	"github.com/omzlo/pivoyager-firmware/rtc"
	"github.com/omzlo/pivoyager-firmware/x/shmring"
)

var ErrUnknownLine = errors.New("platform: unknown line")

// Line is a simulated GPIO level.
type Line struct{ Level bool }

func (l *Line) Get() bool      { return l.Level }
func (l *Line) Set(level bool) { l.Level = level }

// ManualClock only moves when told to; Delay advances it.
type ManualClock struct{ MS uint32 }

func (c *ManualClock) Now() uint32     { return c.MS }
func (c *ManualClock) Delay(ms uint32) { c.MS += ms }

// FixedADC returns preset readings.
type FixedADC struct{ VBat, VRef uint16 }

func (a *FixedADC) Sample() (uint16, uint16) { return a.VBat, a.VRef }

// Sleeper records standby entry instead of stopping the process.
type Sleeper struct {
	Calls int
	Wake  power.Wake
	At    uint32
	clk   *ManualClock
}

func (s *Sleeper) Standby(w power.Wake) {
	s.Calls++
	s.Wake = w
	s.At = s.clk.MS
}

// Sim is the application firmware on a simulated board.
type Sim struct {
	Clock   *ManualClock
	ADC     *FixedADC
	RTC     *rtc.Sim
	Sleeper *Sleeper
	File    *i2cslave.RegisterFile
	Engine  *i2cslave.Engine
	Console *console.Console
	Seq     *power.Sequencer

	Input *shmring.Ring // bytes typed at the console
	lines map[string]*Line
}

// NewSim builds the board with the calendar at epoch seconds start. Inputs
// idle high: button released, no charger status asserted.
func NewSim(start uint32, log io.Writer) *Sim {
	s := &Sim{
		Clock: &ManualClock{},
		ADC:   &FixedADC{VBat: 3100, VRef: config.VRefCal},
		Input: shmring.New(64),
		lines: map[string]*Line{},
	}
	for _, n := range []string{"pg", "pg2", "stat1", "stat2", "button"} {
		s.lines[n] = &Line{Level: true}
	}
	for _, n := range []string{"watchdog", "enable", "adc_enable", "led_pg", "led_ch", "led_st"} {
		s.lines[n] = &Line{}
	}
	s.RTC = rtc.NewSim(s.Clock.Now, start)
	s.Sleeper = &Sleeper{clk: s.Clock}
	s.File = i2cslave.NewRegisterFile(power.Size, power.Mask())
	s.Engine = i2cslave.NewEngine(s.File)
	s.Console = console.New(log, s.Input, s.File, console.DefaultLogSize)
	s.Seq = power.New(s.File, s.Engine, power.Board{
		PG: s.lines["pg"], PG2: s.lines["pg2"],
		Stat1: s.lines["stat1"], Stat2: s.lines["stat2"],
		Button:      s.lines["button"],
		WatchdogPin: s.lines["watchdog"],
		Enable:      s.lines["enable"],
		ADCEnable:   s.lines["adc_enable"],
		LedPG:       s.lines["led_pg"],
		LedCH:       s.lines["led_ch"],
		LedST:       s.lines["led_st"],
		Clock:       s.Clock,
		ADC:         s.ADC,
		RTC:         s.RTC,
		Sleep:       s.Sleeper,
		BootReason:  BootPOR,
		VRefCal:     config.VRefCal,
	}, s.Console)
	return s
}

// Start runs the firmware start-up sequence.
func (s *Sim) Start() error { return s.Seq.Start() }

// Line looks up a board signal by name.
func (s *Sim) Line(name string) (*Line, error) {
	l, ok := s.lines[name]
	if !ok {
		return nil, ErrUnknownLine
	}
	return l, nil
}

// LineNames lists the board signals in order.
func (s *Sim) LineNames() []string {
	names := make([]string, 0, len(s.lines))
	for n := range s.lines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Asleep reports whether the firmware entered standby.
func (s *Sim) Asleep() bool { return s.Seq.Asleep() }

// RunTo ticks once per millisecond up to ms, stopping early at standby.
func (s *Sim) RunTo(ms uint32) {
	for s.Clock.MS < ms && !s.Seq.Asleep() {
		s.Clock.MS++
		s.Seq.Tick()
		s.Console.Tick()
	}
}

// BootSim is the bootloader against a simulated flash controller.
type BootSim struct {
	Flash   *flashprog.SimController
	Handoff *flashprog.SimHandoff
	File    *i2cslave.RegisterFile
	Engine  *i2cslave.Engine
	Prog    *flashprog.Programmer
	Console *console.Console
}

// NewBootSim builds the bootloader with pages below the application region
// protected, as on hardware.
func NewBootSim(mcuid uint32, log io.Writer) *BootSim {
	b := &BootSim{
		Flash:   flashprog.NewSimController(config.FlashBase, config.FlashSize, config.PageSize),
		Handoff: &flashprog.SimHandoff{},
		File:    i2cslave.NewRegisterFile(flashprog.Size, flashprog.Mask()),
	}
	for a := uint32(config.FlashBase); a < config.AppStart; a += config.PageSize {
		b.Flash.Protect(a)
	}
	b.Engine = i2cslave.NewEngine(b.File)
	b.Console = console.New(log, nil, b.File, console.DefaultLogSize)
	b.Prog = flashprog.New(b.File, b.Engine, flashprog.NewFlash(b.Flash), b.Handoff, b.Console,
		flashprog.Config{
			App:   flashprog.Region{Start: config.AppStart, End: config.AppEnd},
			MCUID: mcuid,
		})
	return b
}

// Tick runs one bootloader iteration and drains its log.
func (b *BootSim) Tick() {
	b.Prog.Tick()
	b.Console.Flush()
}
