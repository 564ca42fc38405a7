//go:build rp2040

package platform

import "machine"

// GPIO adapts a machine pin to the power.Input and power.Output interfaces.
type GPIO struct{ p machine.Pin }

func Input(n uint8, mode machine.PinMode) GPIO {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: mode})
	return GPIO{p}
}

func Output(n uint8) GPIO {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return GPIO{p}
}

func (g GPIO) Get() bool      { return g.p.Get() }
func (g GPIO) Set(level bool) { g.p.Set(level) }
