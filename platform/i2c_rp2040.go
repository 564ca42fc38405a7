//go:build rp2040

package platform

import (
	"machine"
	"sync/atomic"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
)

// busFor picks the controller that owns an SDA pin: I2C0 on 0, 4, 8...,
// I2C1 on 2, 6, 10...
func busFor(sda uint8) *machine.I2C {
	if (sda/2)%2 == 0 {
		return machine.I2C0
	}
	return machine.I2C1
}

var targetErrors atomic.Uint32

// TargetErrors counts failed bus events and replies since boot. The target
// goroutine does not log; the main loop reports changes.
func TargetErrors() uint32 { return targetErrors.Load() }

// ServeTarget listens as an I2C target on the host bus and feeds every bus
// event into e from a dedicated goroutine.
func ServeTarget(plan config.Plan, e *i2cslave.Engine) error {
	bus := busFor(plan.I2CSDA)
	err := bus.Configure(machine.I2CConfig{
		Frequency: config.I2CBusHz,
		SDA:       machine.Pin(plan.I2CSDA),
		SCL:       machine.Pin(plan.I2CSCL),
		Mode:      machine.I2CModeTarget,
	})
	if err != nil {
		return err
	}
	if err := bus.Listen(config.I2CAddress); err != nil {
		return err
	}
	go serveTarget(bus, e)
	return nil
}

// The hardware raises one read request per byte once its FIFO is empty,
// so each request is answered with exactly one engine byte.
func serveTarget(bus *machine.I2C, e *i2cslave.Engine) {
	var (
		rx      [32]byte
		open    bool
		reading bool
	)
	for {
		evt, n, err := bus.WaitForEvent(rx[:])
		if err != nil {
			targetErrors.Add(1)
			if open {
				e.Stop()
			}
			open = false
			continue
		}
		switch evt {
		case machine.I2CReceive:
			if !open || reading {
				e.AddressMatch(i2cslave.Write)
				open, reading = true, false
			}
			for _, b := range rx[:n] {
				e.ByteReceived(b)
			}
		case machine.I2CRequest:
			if !open || !reading {
				e.AddressMatch(i2cslave.Read)
				open, reading = true, true
			}
			if err := bus.Reply([]byte{e.ByteRequested()}); err != nil {
				targetErrors.Add(1)
			}
		case machine.I2CFinish:
			if open {
				e.Stop()
			}
			open, reading = false, false
		}
	}
}
