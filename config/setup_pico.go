//go:build pivoyager_pico

package config

// SelectedPlan is a Raspberry Pi Pico wired to a charger breakout for bench
// work. The status LED is the on-board LED.
var SelectedPlan = Plan{
	Name:   "pivoyager_pico",
	I2CSDA: 4, I2CSCL: 5,
	RTCSDA: 18, RTCSCL: 19,
	UARTTX: 0, UARTRX: 1,

	PG: 6, PG2: 7, Stat1: 8, Stat2: 9,
	Button:      14,
	WatchdogPin: 15,

	Enable:    16,
	ADCEnable: 17,
	LedPG:     20,
	LedCH:     21,
	LedST:     25,

	RTCInt: 22,

	VBatADC: 26,
	VRefADC: 27,
}
