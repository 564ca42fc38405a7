//go:build !tinygo

// Package strconvx is the integer-formatting subset of strconv the firmware
// needs. Host builds delegate to strconv; TinyGo builds use a small
// allocation-aware implementation with the same results.
package strconvx

import "strconv"

func AppendUint(dst []byte, u uint64, base int) []byte {
	return strconv.AppendUint(dst, u, base)
}
func AppendInt(dst []byte, n int64, base int) []byte { return strconv.AppendInt(dst, n, base) }
func FormatUint(u uint64, base int) string           { return strconv.FormatUint(u, base) }
func FormatInt(n int64, base int) string             { return strconv.FormatInt(n, base) }
func Itoa(n int) string                              { return strconv.Itoa(n) }
