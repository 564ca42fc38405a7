//go:build rp2040

package platform

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/console"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/x/fmtx"
	"github.com/omzlo/pivoyager-firmware/x/shmring"
)

// StartConsole opens the debug UART and starts its receive goroutine. regs
// is what the 'd' command dumps; it may be nil.
func StartConsole(plan config.Plan, regs *i2cslave.RegisterFile) *console.Console {
	u := uartx.UART0
	if isUART1TX(plan.UARTTX) {
		u = uartx.UART1
	}
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: config.ConsoleBaud,
		TX:       machine.Pin(plan.UARTTX),
		RX:       machine.Pin(plan.UARTRX),
	})

	in := shmring.New(64)
	go func() {
		var buf [16]byte
		for {
			n, err := u.RecvSomeContext(context.Background(), buf[:])
			if err != nil || n == 0 {
				continue
			}
			in.WriteFrom(buf[:n])
		}
	}()

	c := console.New(u, in, regs, console.DefaultLogSize)
	fmtx.DefaultOutput = c
	return c
}

// UART1 TX is available on GPIO 4, 8, 20 and 24.
func isUART1TX(pin uint8) bool { return pin%16 == 4 || pin%16 == 8 }
