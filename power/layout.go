// Package power is the application firmware's control loop: it publishes
// charger, button and calendar status to the host, runs the button state
// machine and status LEDs, executes host commands, and powers the host down
// when a watchdog or the low-battery timer expires.
package power

import "github.com/omzlo/pivoyager-firmware/i2cslave"

// Register layout. Multi-byte fields are little-endian; WATCH, WAKE and
// LBO_TIMER are in seconds.
var (
	FieldMode     = i2cslave.F8(0)
	FieldStat     = i2cslave.F8(1)
	FieldConf     = i2cslave.F8(2)
	FieldProg     = i2cslave.F8(3)
	FieldTime     = i2cslave.F32(4)
	FieldDate     = i2cslave.F32(8)
	FieldSetTime  = i2cslave.F32(12)
	FieldSetDate  = i2cslave.F32(16)
	FieldWatch    = i2cslave.F16(20)
	FieldWake     = i2cslave.F16(22)
	FieldAlarm    = i2cslave.F32(24)
	FieldBoot     = i2cslave.F16(28)
	FieldVBat     = i2cslave.F16(30)
	FieldVRef     = i2cslave.F16(32)
	FieldVRefCal  = i2cslave.F16(34)
	FieldLBOTimer = i2cslave.F16(36)
	FieldErr      = i2cslave.F8(38)
)

const (
	Size = 40
	Mode = 'N'
)

// STAT bits. The low three bits form the charger status code.
const (
	StatPG     = 0x01
	StatStat1  = 0x02
	StatStat2  = 0x04
	StatPG2    = 0x08
	StatInits  = 0x10
	StatAlarm  = 0x40
	StatButton = 0x80
)

// CONF bits.
const (
	ConfI2CWatchdog = 0x01
	ConfPinWatchdog = 0x02
	ConfWakeAfter   = 0x04
	ConfWakeAlarm   = 0x08
	ConfWakePower   = 0x10
	ConfWakeButton  = 0x20
	ConfReserved    = 0x40
	ConfLBOShutdown = 0x80

	confWatchdogs = ConfI2CWatchdog | ConfPinWatchdog
)

// PROG bits, listed in execution order.
const (
	ProgSetCalendar = 0x04
	ProgClearAlarm  = 0x01
	ProgSetAlarm    = 0x08
	ProgClearButton = 0x02
)

var progOrder = [...]byte{ProgSetCalendar, ProgClearAlarm, ProgSetAlarm, ProgClearButton}

// Mask returns the per-byte write mask: configuration, commands and the
// set-point registers are host-writable, everything the device measures
// is not.
func Mask() []byte {
	m := make([]byte, Size)
	m[FieldConf.Off] = 0xFF &^ ConfReserved
	m[FieldProg.Off] = ProgSetCalendar | ProgClearAlarm | ProgSetAlarm | ProgClearButton
	for _, f := range []i2cslave.Field{FieldSetTime, FieldSetDate, FieldWatch, FieldWake, FieldAlarm, FieldLBOTimer} {
		for i := int(f.Off); i < f.End(); i++ {
			m[i] = 0xFF
		}
	}
	return m
}
