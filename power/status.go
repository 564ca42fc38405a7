package power

import "github.com/omzlo/pivoyager-firmware/x/timex"

// StatusCode is STAT & 7, decoded from the charger's PG, STAT1 and STAT2.
type StatusCode uint8

const (
	StatusNA StatusCode = iota
	StatusFault
	StatusLowBattery
	StatusCharging
	StatusImpossible
	StatusComplete
	StatusDischarging
	StatusNoBattery
)

func (c StatusCode) String() string {
	switch c {
	case StatusFault:
		return "fault"
	case StatusLowBattery:
		return "low battery"
	case StatusCharging:
		return "charging"
	case StatusImpossible:
		return "impossible"
	case StatusComplete:
		return "charge complete"
	case StatusDischarging:
		return "discharging"
	case StatusNoBattery:
		return "no battery"
	default:
		return "n/a"
	}
}

// Code extracts the status code from a STAT byte.
func Code(stat uint8) StatusCode { return StatusCode(stat & 7) }

// Pattern is an LED animation.
type Pattern uint8

const (
	PatternOff Pattern = iota
	PatternOn
	PatternSlow
	PatternFast
)

// Half periods, ms.
const (
	SlowHalf = 500
	FastHalf = 100
)

// Level returns the LED level for pattern p at now.
func (p Pattern) Level(now uint32) bool {
	switch p {
	case PatternOn:
		return true
	case PatternSlow:
		return timex.Phase(now, SlowHalf)
	case PatternFast:
		return timex.Phase(now, FastHalf)
	default:
		return false
	}
}

// ledTable maps status codes to the PG and CH LED patterns. Codes without
// an entry leave both LEDs as they are. Low battery shows the charging
// pattern, as shipped boards always have.
var ledTable = [8]struct {
	pg, ch Pattern
	set    bool
}{
	StatusFault:       {PatternFast, PatternFast, true},
	StatusLowBattery:  {PatternOn, PatternSlow, true},
	StatusCharging:    {PatternOn, PatternSlow, true},
	StatusComplete:    {PatternOn, PatternOn, true},
	StatusDischarging: {PatternOff, PatternOff, true},
	StatusNoBattery:   {PatternOn, PatternOff, true},
}

// LEDPatterns returns the PG and CH patterns for c; ok is false for codes
// that leave the LEDs untouched.
func LEDPatterns(c StatusCode) (pg, ch Pattern, ok bool) {
	e := ledTable[c&7]
	return e.pg, e.ch, e.set
}
