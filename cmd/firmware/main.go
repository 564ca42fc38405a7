//go:build rp2040

// Command firmware is the application image: power sequencing, calendar
// and watchdog behind the host-facing register file.
package main

import (
	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/console"
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/platform"
	"github.com/omzlo/pivoyager-firmware/power"
)

func main() {
	plan := config.SelectedPlan
	file := i2cslave.NewRegisterFile(power.Size, power.Mask())
	eng := i2cslave.NewEngine(file)
	con := platform.StartConsole(plan, file)
	con.Printf("[main] pivoyager %s, boot %04x\n", plan.Name, platform.BootReason())

	clk := platform.NewClock()
	clock, err := platform.NewRTC(plan)
	if err != nil {
		fatal(con, "rtc bus", err)
	}
	seq := power.New(file, eng, platform.NewBoard(plan, clk, clock, con), con)

	// Oscillator and init-phase timeouts leave the host without a usable
	// clock or wake source, so they halt here.
	if err := seq.Start(); err != nil {
		fatal(con, "rtc init", err)
	}
	if err := platform.ServeTarget(plan, eng); err != nil {
		fatal(con, "i2c target", err)
	}
	con.Printf("[main] listening at %02x\n", config.I2CAddress)

	var busErrs uint32
	for {
		seq.Tick()
		if n := platform.TargetErrors(); n != busErrs {
			con.Printf("[main] i2c target errors: %d\n", n)
			busErrs = n
		}
		con.Tick()
		clk.Delay(config.TickPeriod)
	}
}

func fatal(con *console.Console, what string, err error) {
	con.Printf("[main] %s: %v (code %d)\n", what, err, int8(errcode.Of(err)))
	con.Flush()
	platform.Halt()
}
