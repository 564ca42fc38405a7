// Package mathx holds the generic numeric helpers shared by the register
// engine, the calendar and the image loader.
package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to the closed range between lo and hi, in either order.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// CeilDiv returns a/b rounded up, or zero when b is zero.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
