package power

import "github.com/omzlo/pivoyager-firmware/x/timex"

// Watchdog tracks the last host sign of life. Either source only counts
// while its enable bit is set in the shadow configuration.
type Watchdog struct {
	conf uint8
	last uint32
}

// Configure installs a new shadow configuration. Turning on a watchdog
// source restarts the deadline.
func (w *Watchdog) Configure(conf uint8, now uint32) {
	if conf&^w.conf&confWatchdogs != 0 {
		w.last = now
	}
	w.conf = conf
}

// BusActivity records a completed read or write transaction.
func (w *Watchdog) BusActivity(now uint32) {
	if w.conf&ConfI2CWatchdog != 0 {
		w.last = now
	}
}

// PinActivity records a level change on the watchdog pin.
func (w *Watchdog) PinActivity(now uint32) {
	if w.conf&ConfPinWatchdog != 0 {
		w.last = now
	}
}

// Expired reports whether an enabled watchdog went silent for more than
// timeout seconds.
func (w *Watchdog) Expired(now uint32, timeout uint16) bool {
	return w.conf&confWatchdogs != 0 && timex.Exceeded(now, w.last, timex.Seconds(timeout))
}

// LBOTimer measures how long the charger has reported low battery.
type LBOTimer struct {
	armed bool
	since uint32
}

// Update arms the timer on entry into the low-battery code and cancels it
// on exit.
func (l *LBOTimer) Update(c StatusCode, now uint32) {
	switch {
	case c != StatusLowBattery:
		l.armed = false
	case !l.armed:
		l.armed = true
		l.since = now
	}
}

func (l *LBOTimer) Armed() bool { return l.armed }

// Expired reports whether low battery persisted for more than grace
// seconds.
func (l *LBOTimer) Expired(now uint32, grace uint16) bool {
	return l.armed && timex.Exceeded(now, l.since, timex.Seconds(grace))
}
