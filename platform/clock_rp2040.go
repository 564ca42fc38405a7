//go:build rp2040

package platform

import (
	"machine"
	"time"

	"github.com/omzlo/pivoyager-firmware/config"
)

// Clock counts milliseconds since it was created.
type Clock struct{ start time.Time }

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Now() uint32 { return uint32(time.Since(c.start) / time.Millisecond) }

// Delay sleeps, which lets the bus goroutines run.
func (c *Clock) Delay(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// ADC samples the battery divider and the board reference, 12-bit.
type ADC struct{ vbat, vref machine.ADC }

func NewADC(plan config.Plan) *ADC {
	machine.InitADC()
	a := &ADC{
		vbat: machine.ADC{Pin: machine.Pin(plan.VBatADC)},
		vref: machine.ADC{Pin: machine.Pin(plan.VRefADC)},
	}
	a.vbat.Configure(machine.ADCConfig{})
	a.vref.Configure(machine.ADCConfig{})
	return a
}

func (a *ADC) Sample() (vbat, vref uint16) {
	return a.vbat.Get() >> 4, a.vref.Get() >> 4
}
