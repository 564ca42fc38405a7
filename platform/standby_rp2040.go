//go:build rp2040

package platform

import (
	"device/arm"
	"device/rp"
	"machine"
	"runtime/volatile"

	"github.com/omzlo/pivoyager-firmware/power"
)

var woken volatile.Register8

func wake(machine.Pin) { woken.Set(1) }

// Standby parks the core until an armed source fires, then resets. The
// reset is marked so the next boot reports BootStandbyWake.
type Standby struct {
	Button, PowerGood, RTCInt machine.Pin
	Log                       interface {
		Printf(format string, args ...any)
		Flush()
	}
}

func (s *Standby) Standby(w power.Wake) {
	alarm := w.Alarm || w.AlarmPending
	if w.Button {
		s.arm("button", s.Button, machine.PinFalling)
	}
	if w.PowerGood {
		s.arm("power good", s.PowerGood, machine.PinRising)
	}
	if alarm {
		s.arm("rtc alarm", s.RTCInt, machine.PinFalling)
	}
	if s.Log != nil {
		s.Log.Flush()
	}
	rp.WATCHDOG.SCRATCH0.Set(standbyMagic)

	// Edges seen before this point are stale. INT is level-held while the
	// alarm flag is set, so a match that already happened shows as low.
	woken.Set(0)
	if alarm && !s.RTCInt.Get() {
		machine.CPUReset()
	}
	for woken.Get() == 0 {
		arm.Asm("wfi")
	}
	machine.CPUReset()
}

func (s *Standby) arm(name string, p machine.Pin, edge machine.PinChange) {
	err := p.SetInterrupt(edge, wake)
	if err != nil && s.Log != nil {
		s.Log.Printf("[power] wake %s not armed: %v\n", name, err)
	}
}

// Halt stops forever after a fatal start-up error.
func Halt() {
	for {
		arm.Asm("wfi")
	}
}
