// Package platform binds the firmware to hardware. The rp2040 files drive
// the real pins, buses and flash; the host files build a simulated board
// for the simulator and tests.
package platform

// Boot reason bits published in the BOOT register.
const (
	BootPOR         = 1 << iota // power-on or brown-out
	BootRunPin                  // RUN pin pulled low
	BootDebug                   // debugger-initiated restart
	BootWatchdog                // hardware watchdog
	BootStandbyWake             // woke from standby
)
