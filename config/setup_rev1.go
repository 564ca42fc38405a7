//go:build !pivoyager_pico

package config

// SelectedPlan is the production PiVoyager board.
var SelectedPlan = Plan{
	Name:   "pivoyager_rev1",
	I2CSDA: 0, I2CSCL: 1,
	RTCSDA: 2, RTCSCL: 3,
	UARTTX: 4, UARTRX: 5,

	PG: 6, PG2: 7, Stat1: 8, Stat2: 9,
	Button:      10,
	WatchdogPin: 11,

	Enable:    12,
	ADCEnable: 13,
	LedPG:     14,
	LedCH:     15,
	LedST:     16,

	RTCInt: 17,

	VBatADC: 26,
	VRefADC: 27,
}
