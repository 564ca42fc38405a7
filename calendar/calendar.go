// Package calendar converts between the RTC's packed BCD calendar registers
// and linear seconds since 1970-01-01T00:00:00, for the years 2000-2099.
//
// Bit layouts follow the RTC registers exactly so values can be written to
// hardware (and to the host register file) unchanged:
//
//	Date:  YT YU [23:16]  WDU [15:13]  MT MU [12:8]  DT DU [5:0]
//	Time:  HT HU [21:16]  MNT MNU [14:8]  ST SU [6:0]
//	Alarm: DT DU [29:24]  HT HU [21:16]  MNT MNU [14:8]  ST SU [6:0]
//
// Weekdays are 1 (Monday) .. 7 (Sunday).
package calendar

import "github.com/omzlo/pivoyager-firmware/x/mathx"

type (
	Date  uint32
	Time  uint32
	Alarm uint32
)

const (
	secondsPerDay = 86400

	// 719468 days separate 0000-03-01 from 1970-01-01.
	epochShift  = 719468
	daysPerEra  = 146097
	minYear     = 2000
	maxYear     = 2099
	MinSeconds  = 946684800  // 2000-01-01T00:00:00
	MaxSeconds  = 4102444799 // 2099-12-31T23:59:59
	weekdayBase = 3          // 1970-01-01 was a Thursday
)

// PackDate builds a Date from binary fields; year is 0..99 (offset from 2000).
func PackDate(weekday, day, month, year uint8) Date {
	return Date(uint32(ToBCD(year))<<16 | uint32(weekday&7)<<13 | uint32(ToBCD(month))<<8 | uint32(ToBCD(day)))
}

// PackTime builds a Time from binary fields.
func PackTime(hour, minute, second uint8) Time {
	return Time(uint32(ToBCD(hour))<<16 | uint32(ToBCD(minute))<<8 | uint32(ToBCD(second)))
}

func (d Date) Year() int    { return minYear + int(FromBCD(uint8(d>>16))) }
func (d Date) Month() int   { return int(FromBCD(uint8(d>>8) & 0x1F)) }
func (d Date) Day() int     { return int(FromBCD(uint8(d) & 0x3F)) }
func (d Date) Weekday() int { return int(d>>13) & 7 }

func (t Time) Hour() int   { return int(FromBCD(uint8(t>>16) & 0x3F)) }
func (t Time) Minute() int { return int(FromBCD(uint8(t>>8) & 0x7F)) }
func (t Time) Second() int { return int(FromBCD(uint8(t) & 0x7F)) }

// Valid reports whether d is a real date in range with a weekday that
// agrees with it.
func (d Date) Valid() bool {
	if d&^0x00FFFF3F != 0 {
		return false
	}
	if !validBCD(uint8(d>>16)) || !validBCD(uint8(d>>8)&0x1F) || !validBCD(uint8(d)&0x3F) {
		return false
	}
	y, m, day := d.Year(), d.Month(), d.Day()
	if m < 1 || m > 12 || day < 1 || day > daysIn(y, m) {
		return false
	}
	return d.Weekday() == weekdayOf(daysFromCivil(y, m, day))
}

// Seconds returns the seconds elapsed since midnight.
func (t Time) Seconds() uint32 {
	return uint32(t.Hour())*3600 + uint32(t.Minute())*60 + uint32(t.Second())
}

// Valid reports whether t is a real 24h time of day.
func (t Time) Valid() bool {
	if t&^0x003F7F7F != 0 {
		return false
	}
	if !validBCD(uint8(t>>16)&0x3F) || !validBCD(uint8(t>>8)&0x7F) || !validBCD(uint8(t)&0x7F) {
		return false
	}
	return t.Hour() < 24 && t.Minute() < 60 && t.Second() < 60
}

// ToSeconds converts a calendar value to seconds since the Unix epoch. The
// weekday field is ignored.
func ToSeconds(d Date, t Time) uint32 {
	days := daysFromCivil(d.Year(), d.Month(), d.Day())
	return uint32(days)*secondsPerDay + t.Seconds()
}

// FromSeconds is the inverse of ToSeconds and fills in the weekday. Inputs
// outside 2000-2099 are clamped to the supported range.
func FromSeconds(s uint32) (Date, Time) {
	s = mathx.Clamp(s, MinSeconds, MaxSeconds)
	days := int(s / secondsPerDay)
	x := s % secondsPerDay

	y, m, d := civilFromDays(days)
	date := PackDate(uint8(weekdayOf(days)), uint8(d), uint8(m), uint8(y-minYear))
	tm := PackTime(uint8(x/3600), uint8(x%3600/60), uint8(x%60))
	return date, tm
}

// ToAlarm packs a one-shot alarm matching day of month and time of day.
// Weekday and year are not part of the match.
func ToAlarm(d Date, t Time) Alarm {
	return Alarm(uint32(t) | (uint32(d)&0x3F)<<24)
}

// Day returns the BCD day-of-month the alarm matches.
func (a Alarm) Day() int { return int(FromBCD(uint8(a>>24) & 0x3F)) }

// Time returns the time-of-day part of the alarm.
func (a Alarm) Time() Time { return Time(a & 0x003F7F7F) }

// After returns the alarm that fires delay seconds after (d, t).
func After(d Date, t Time, delay uint32) Alarm {
	nd, nt := FromSeconds(ToSeconds(d, t) + delay)
	return ToAlarm(nd, nt)
}

// daysFromCivil counts days from 1970-01-01 using the era decomposition
// (400-year eras, year starting in March).
func daysFromCivil(y, m, d int) int {
	if m <= 2 {
		y--
	}
	era := y / 400
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerEra + doe - epochShift
}

func civilFromDays(z int) (y, m, d int) {
	z += epochShift
	era := z / daysPerEra
	doe := z - era*daysPerEra
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

func weekdayOf(days int) int { return (days+weekdayBase)%7 + 1 }

func daysIn(y, m int) int {
	switch m {
	case 2:
		if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}
