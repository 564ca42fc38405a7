//go:build rp2040

package platform

import (
	"machine"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/drivers/ds3231"
	"github.com/omzlo/pivoyager-firmware/rtc"
)

// NewRTC opens the controller bus and wraps the DS3231 on it.
func NewRTC(plan config.Plan) (*rtc.DS3231, error) {
	bus := busFor(plan.RTCSDA)
	err := bus.Configure(machine.I2CConfig{
		Frequency: config.I2CBusHz,
		SDA:       machine.Pin(plan.RTCSDA),
		SCL:       machine.Pin(plan.RTCSCL),
	})
	if err != nil {
		return nil, err
	}
	dev := ds3231.New(bus, ds3231.Config{Address: config.RTCAddress})
	return rtc.NewDS3231(dev, config.RTCPolls), nil
}
