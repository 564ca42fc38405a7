//go:build !tinygo

// Package irq provides the critical-section primitive shared by interrupt
// handlers and the main loop.
//
// Host builds have no interrupt controller; a process-wide mutex stands in so
// tests can drive "interrupt" handlers from a goroutine. Unlike the MCU
// version, sections must not nest.
package irq

import "sync"

var mu sync.Mutex

type State struct{}

func Disable() State {
	mu.Lock()
	return State{}
}

func Restore(State) { mu.Unlock() }
