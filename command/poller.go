// Package command layers the opcode convention on top of a register file:
// the host writes an opcode (and its parameters) in one transaction, the
// main loop executes it on its next tick and clears the opcode, reporting
// the outcome in a shared error field.
package command

import (
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
)

// Counter reports completed host write transactions.
type Counter interface {
	RX() uint32
}

// Command is one accepted opcode.
type Command struct {
	Op byte

	gen uint8 // opcode write generation seen by Poll
}

// Has reports whether bit is requested.
func (c Command) Has(bit byte) bool { return c.Op&bit != 0 }

// Config describes where the opcode and error fields live.
type Config struct {
	Opcode i2cslave.Field
	Err    i2cslave.Field // zero Width: no error field
	// Bitwise marks opcodes whose bits are independent actions: completion
	// clears only the executed bits. Enumerated opcodes (one value per
	// action) are cleared only when unchanged.
	Bitwise bool
}

// Poller detects new commands without blocking.
type Poller struct {
	file *i2cslave.RegisterFile
	rx   Counter
	cfg  Config

	last     uint32
	activity bool
}

func NewPoller(file *i2cslave.RegisterFile, rx Counter, cfg Config) *Poller {
	return &Poller{file: file, rx: rx, cfg: cfg, last: rx.RX()}
}

// Poll is called once per main-loop tick. It returns a command only when a
// write transaction completed since the previous poll and the opcode is
// non-zero.
func (p *Poller) Poll() (Command, bool) {
	n := p.rx.RX()
	p.activity = n != p.last
	if !p.activity {
		return Command{}, false
	}
	p.last = n
	var cmd Command
	p.file.Atomic(func(tx i2cslave.Tx) {
		cmd = Command{Op: tx.U8(p.cfg.Opcode), gen: tx.Generation(p.cfg.Opcode)}
	})
	if cmd.Op == 0 {
		return Command{}, false
	}
	return cmd, true
}

// Activity reports whether the last Poll saw a new write transaction,
// whether or not it carried an opcode.
func (p *Poller) Activity() bool { return p.activity }

// Complete publishes code and clears cmd's opcode in one critical section.
// If the host wrote the opcode byte again while cmd was executing, the byte
// is left as written, even when the value is identical: that write is a new
// request and its own STOP bumped the counter, so the next poll picks it up.
func (p *Poller) Complete(cmd Command, code errcode.Code) {
	p.file.Atomic(func(tx i2cslave.Tx) {
		if p.cfg.Err.Width != 0 {
			tx.SetU8(p.cfg.Err, uint8(code))
		}
		if tx.Generation(p.cfg.Opcode) != cmd.gen {
			return
		}
		if p.cfg.Bitwise {
			tx.SetU8(p.cfg.Opcode, tx.U8(p.cfg.Opcode)&^cmd.Op)
		} else if tx.U8(p.cfg.Opcode) == cmd.Op {
			tx.SetU8(p.cfg.Opcode, 0)
		}
	})
}
