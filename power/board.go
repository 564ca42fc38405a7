package power

import "github.com/omzlo/pivoyager-firmware/rtc"

// Input is a sampled GPIO level.
type Input interface {
	Get() bool
}

// Output is a driven GPIO.
type Output interface {
	Set(level bool)
}

// Clock is the millisecond tick.
type Clock interface {
	Now() uint32
	Delay(ms uint32)
}

// ADC samples the battery divider and the internal reference.
type ADC interface {
	Sample() (vbat, vref uint16)
}

// Wake lists the sources armed before standby.
type Wake struct {
	Button    bool
	PowerGood bool
	Alarm     bool // RTC alarm edge
	// AlarmPending: the alarm already matched, so the RTC wake line is
	// asserted now and no edge will follow. Sleep must end at once.
	AlarmPending bool
}

// Sleeper enters standby. Hardware implementations clear any stale wake
// flag right before sleeping and never return: the next code to run is the
// reset path.
type Sleeper interface {
	Standby(w Wake)
}

// Logger is the subset of the debug console used here.
type Logger interface {
	Printf(format string, args ...any)
}

// Board gathers the hardware the sequencer drives. Input levels are raw:
// the button reads low while pressed.
type Board struct {
	PG, PG2, Stat1, Stat2 Input
	Button                Input
	WatchdogPin           Input

	Enable    Output // host power
	ADCEnable Output // battery divider
	LedPG     Output
	LedCH     Output
	LedST     Output

	Clock Clock
	ADC   ADC
	RTC   rtc.Clock
	Sleep Sleeper

	BootReason uint16
	VRefCal    uint16
}
