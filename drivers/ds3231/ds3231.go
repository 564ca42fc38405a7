// Package ds3231 is a small TinyGo driver for the DS3231 I2C real-time
// clock. Calendar values are exchanged as the chip's raw BCD bytes so the
// caller controls the encoding; alarm 1 and the oscillator-stop flag are
// exposed for wake scheduling.
package ds3231

import "tinygo.org/x/drivers"

type Config struct {
	Address uint16
}

type Device struct {
	i2c  drivers.I2C
	addr uint16

	w [8]byte
	r [7]byte
}

// Calendar holds the timekeeping registers, BCD encoded, 24h mode.
type Calendar struct {
	Seconds, Minutes, Hours uint8
	Weekday                 uint8 // 1..7
	Date, Month, Year       uint8
}

// Alarm1 holds alarm 1 in BCD. A zero mask matches every field against
// Date (day of month), Hours, Minutes and Seconds.
type Alarm1 struct {
	Seconds, Minutes, Hours, Date uint8
	// Mask bits 0..3 ignore seconds, minutes, hours, date.
	Mask uint8
}

func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

// ReadCalendar reads all seven timekeeping registers in one burst so the
// fields are coherent.
func (d *Device) ReadCalendar() (Calendar, error) {
	if err := d.readRegs(regSeconds, d.r[:7]); err != nil {
		return Calendar{}, err
	}
	return Calendar{
		Seconds: d.r[0] & 0x7F,
		Minutes: d.r[1] & 0x7F,
		Hours:   d.r[2] & 0x3F,
		Weekday: d.r[3] & 0x07,
		Date:    d.r[4] & 0x3F,
		Month:   d.r[5] & 0x1F,
		Year:    d.r[6],
	}, nil
}

// WriteCalendar sets the clock. The chip restarts its seconds countdown on
// the write.
func (d *Device) WriteCalendar(c Calendar) error {
	return d.writeRegs(regSeconds,
		c.Seconds&0x7F, c.Minutes&0x7F, c.Hours&0x3F, c.Weekday&0x07,
		c.Date&0x3F, c.Month&0x1F, c.Year)
}

// SetAlarm1 programs alarm 1 in day-of-month mode.
func (d *Device) SetAlarm1(a Alarm1) error {
	b := [4]byte{a.Seconds & 0x7F, a.Minutes & 0x7F, a.Hours & 0x3F, a.Date & 0x3F}
	for i := range b {
		if a.Mask&(1<<i) != 0 {
			b[i] |= alarmMask
		}
	}
	return d.writeRegs(regAlarm1, b[0], b[1], b[2], b[3])
}

// ReadAlarm1 returns the programmed alarm 1.
func (d *Device) ReadAlarm1() (Alarm1, error) {
	if err := d.readRegs(regAlarm1, d.r[:4]); err != nil {
		return Alarm1{}, err
	}
	var a Alarm1
	for i := 0; i < 4; i++ {
		if d.r[i]&alarmMask != 0 {
			a.Mask |= 1 << i
		}
	}
	a.Seconds = d.r[0] & 0x7F
	a.Minutes = d.r[1] & 0x7F
	a.Hours = d.r[2] & 0x3F
	a.Date = d.r[3] & 0x3F
	return a, nil
}

// EnableAlarm1Interrupt routes alarm 1 to the INT pin.
func (d *Device) EnableAlarm1Interrupt(on bool) error {
	if on {
		return d.modify(regControl, ctlINTCN|ctlA1IE, 0)
	}
	return d.modify(regControl, 0, ctlA1IE)
}

// Alarm1Fired reports the A1F flag.
func (d *Device) Alarm1Fired() (bool, error) {
	st, err := d.readReg(regStatus)
	return st&stA1F != 0, err
}

// ClearAlarm1 clears A1F, releasing the INT pin.
func (d *Device) ClearAlarm1() error { return d.modify(regStatus, 0, stA1F) }

// OscillatorStopped reports OSF: the time may be invalid.
func (d *Device) OscillatorStopped() (bool, error) {
	st, err := d.readReg(regStatus)
	return st&stOSF != 0, err
}

// StartOscillator enables the oscillator on battery and clears OSF.
func (d *Device) StartOscillator() error {
	if err := d.modify(regControl, 0, ctlEOSC); err != nil {
		return err
	}
	return d.modify(regStatus, 0, stOSF)
}

// Busy reports the TCXO conversion busy flag.
func (d *Device) Busy() (bool, error) {
	st, err := d.readReg(regStatus)
	return st&stBSY != 0, err
}

// Temperature returns the die temperature in quarter degrees Celsius.
func (d *Device) Temperature() (int16, error) {
	if err := d.readRegs(regTempMSB, d.r[:2]); err != nil {
		return 0, err
	}
	return int16(uint16(d.r[0])<<8|uint16(d.r[1])) >> 6, nil
}
