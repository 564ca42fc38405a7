// Package timex holds helpers for the firmware's wrapping millisecond tick.
package timex

// Since returns the milliseconds from then to now. The counter wraps after
// ~49.7 days; unsigned subtraction keeps the result right across the wrap.
func Since(now, then uint32) uint32 { return now - then }

// Exceeded reports whether strictly more than limit ms passed since then.
func Exceeded(now, then, limit uint32) bool { return now-then > limit }

// Seconds converts a host-written seconds register to milliseconds.
func Seconds(s uint16) uint32 { return uint32(s) * 1000 }

// Phase reports the on/off phase of a square wave with the given half
// period at time now.
func Phase(now, half uint32) bool {
	if half == 0 {
		return true
	}
	return (now/half)&1 != 0
}
