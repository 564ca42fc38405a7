// Package config holds the firmware constants and the board pin plan. The
// plan is chosen at build time by tag, the same way HAL setups are.
package config

// Bus and console.
const (
	I2CAddress  = 0x65
	I2CBusHz    = 100_000
	ConsoleBaud = 38400
	RTCAddress  = 0x68
)

// Flash map as seen by the bootloader protocol. The RP2040 flash
// controller translates these into XIP offsets.
const (
	FlashBase = 0x0800_0000
	FlashSize = 32 * 1024
	AppStart  = 0x0800_2000
	AppEnd    = 0x0800_7FFF
	PageSize  = 1024
)

// Timing, milliseconds unless stated.
const (
	TickPeriod    = 1
	BootHoldCheck = 10 // button debounce before deciding to stay in the bootloader
	RTCPolls      = 1000
)

// Plan maps board signals to GPIO numbers. Inputs marked ActiveLow read
// low when asserted.
type Plan struct {
	Name string

	I2CSDA, I2CSCL uint8 // host-facing target bus
	RTCSDA, RTCSCL uint8 // DS3231 controller bus
	UARTTX, UARTRX uint8

	PG, PG2, Stat1, Stat2 uint8 // charger status, active low
	Button                uint8 // active low, pulled up
	WatchdogPin           uint8

	Enable    uint8 // host 5V enable
	ADCEnable uint8 // battery divider enable
	LedPG     uint8
	LedCH     uint8
	LedST     uint8

	RTCInt uint8 // DS3231 INT/SQW, open drain, active low

	VBatADC uint8 // divided battery voltage
	VRefADC uint8 // 1.2 V shunt reference
}

// VRefCal is the ADC count the reference reads at a nominal 3.3 V supply;
// it stands in for the factory calibration word.
const VRefCal = 1489

// Pins lists every GPIO the plan claims, in declaration order.
func (p Plan) Pins() []uint8 {
	return []uint8{
		p.I2CSDA, p.I2CSCL, p.RTCSDA, p.RTCSCL, p.UARTTX, p.UARTRX,
		p.PG, p.PG2, p.Stat1, p.Stat2, p.Button, p.WatchdogPin,
		p.Enable, p.ADCEnable, p.LedPG, p.LedCH, p.LedST, p.RTCInt,
		p.VBatADC, p.VRefADC,
	}
}
