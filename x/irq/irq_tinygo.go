//go:build tinygo

// Package irq provides the critical-section primitive shared by interrupt
// handlers and the main loop.
package irq

import "runtime/interrupt"

// State is the interrupt mask captured by Disable.
type State = interrupt.State

// Disable masks interrupts and returns the previous state.
func Disable() State { return interrupt.Disable() }

// Restore re-establishes a state returned by Disable.
func Restore(s State) { interrupt.Restore(s) }
