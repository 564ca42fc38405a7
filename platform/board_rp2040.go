//go:build rp2040

package platform

import (
	"machine"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/console"
	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/power"
	"github.com/omzlo/pivoyager-firmware/rtc"
)

// NewBoard configures every pin of plan for the application firmware.
func NewBoard(plan config.Plan, clk *Clock, r rtc.Clock, log *console.Console) power.Board {
	in := func(n uint8) GPIO { return Input(n, machine.PinInputPullup) }
	return power.Board{
		PG: in(plan.PG), PG2: in(plan.PG2),
		Stat1: in(plan.Stat1), Stat2: in(plan.Stat2),
		Button:      in(plan.Button),
		WatchdogPin: Input(plan.WatchdogPin, machine.PinInput),

		Enable:    Output(plan.Enable),
		ADCEnable: Output(plan.ADCEnable),
		LedPG:     Output(plan.LedPG),
		LedCH:     Output(plan.LedCH),
		LedST:     Output(plan.LedST),

		Clock: clk,
		ADC:   NewADC(plan),
		RTC:   r,
		Sleep: &Standby{
			Button:    machine.Pin(plan.Button),
			PowerGood: machine.Pin(plan.PG),
			RTCInt:    Input(plan.RTCInt, machine.PinInputPullup).p,
			Log:       log,
		},

		BootReason: BootReason(),
		VRefCal:    config.VRefCal,
	}
}

// ButtonHeld samples the button twice across the debounce window.
func ButtonHeld(plan config.Plan, clk *Clock) bool {
	btn := Input(plan.Button, machine.PinInputPullup)
	if btn.Get() {
		return false
	}
	clk.Delay(config.BootHoldCheck)
	return !btn.Get()
}

// NewFlash returns the bootloader's view of the flash data area. Pages
// below the application region are write-protected.
func NewFlash() *flashprog.Flash {
	return flashprog.NewFlash(flashprog.NewRP2040Controller(config.FlashBase, config.AppStart))
}

// NewHandoff starts images from the XIP window of the flash data area.
func NewHandoff() flashprog.VectorHandoff {
	return flashprog.VectorHandoff{XIP: machine.FlashDataStart(), Base: config.FlashBase}
}

// BootLEDs returns the three status LEDs as chase outputs.
func BootLEDs(plan config.Plan) (pg, ch, st GPIO) {
	return Output(plan.LedPG), Output(plan.LedCH), Output(plan.LedST)
}
