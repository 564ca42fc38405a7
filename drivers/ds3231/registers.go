package ds3231

const (
	// 7-bit I2C address (1101_000b).
	AddressDefault = 0x68

	// --- Timekeeping registers (BCD) ---
	regSeconds = 0x00
	regMinutes = 0x01
	regHours   = 0x02 // bit6: 12h mode
	regWeekday = 0x03 // 1..7
	regDate    = 0x04
	regMonth   = 0x05 // bit7: century
	regYear    = 0x06

	// --- Alarm 1 (seconds, minutes, hours, day/date) ---
	regAlarm1 = 0x07

	// --- Control / status ---
	regControl = 0x0E
	regStatus  = 0x0F
	regAging   = 0x10
	regTempMSB = 0x11

	// Control bits
	ctlEOSC  = 1 << 7 // oscillator disabled on battery when set
	ctlINTCN = 1 << 2 // INT/SQW pin driven by alarms
	ctlA2IE  = 1 << 1
	ctlA1IE  = 1 << 0

	// Status bits
	stOSF = 1 << 7 // oscillator stopped since last clear
	stBSY = 1 << 2
	stA2F = 1 << 1
	stA1F = 1 << 0

	// Alarm mask bit (A1Mx) and day/date select.
	alarmMask  = 1 << 7
	alarmDayDT = 1 << 6

	hour12     = 1 << 6
	centuryBit = 1 << 7
)
