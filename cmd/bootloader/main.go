//go:build rp2040

// Command bootloader stays resident when the button is held through a cold
// power-on and lets the host reprogram the application over I2C. Otherwise
// it starts the application straight away.
package main

import (
	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/platform"
)

func main() {
	plan := config.SelectedPlan
	clk := platform.NewClock()
	handoff := platform.NewHandoff()

	if !flashprog.ShouldEnter(platform.PowerOnReset(), platform.ButtonHeld(plan, clk)) {
		handoff.Jump(config.AppStart)
	}

	file := i2cslave.NewRegisterFile(flashprog.Size, flashprog.Mask())
	eng := i2cslave.NewEngine(file)
	con := platform.StartConsole(plan, file)
	id := platform.MCUID()
	con.Printf("[boot] bootloader v%d, mcuid %08x\n", flashprog.Version, id)

	prog := flashprog.New(file, eng, platform.NewFlash(), handoff, con, flashprog.Config{
		App:   flashprog.Region{Start: config.AppStart, End: config.AppEnd},
		MCUID: id,
	})
	if err := platform.ServeTarget(plan, eng); err != nil {
		con.Printf("[boot] i2c target: %v\n", err)
		con.Flush()
		platform.Halt()
	}

	pg, ch, st := platform.BootLEDs(plan)
	chase := flashprog.NewChase(pg, ch, st)
	var busErrs uint32
	for {
		prog.Tick()
		chase.Update(clk.Now())
		if n := platform.TargetErrors(); n != busErrs {
			con.Printf("[boot] i2c target errors: %d\n", n)
			busErrs = n
		}
		con.Tick()
		clk.Delay(config.TickPeriod)
	}
}
