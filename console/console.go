// Package console is the debug UART. Log lines are queued in a ring and
// drained a chunk per tick so the control loop never waits on the line.
// Received bytes arrive through a second ring fed by the UART reader.
package console

import (
	"io"

	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/x/conv"
	"github.com/omzlo/pivoyager-firmware/x/fmtx"
	"github.com/omzlo/pivoyager-firmware/x/shmring"
)

const (
	// ChunkSize bounds the bytes written to the port per Pump.
	ChunkSize = 32
	// DumpWidth is the number of register bytes per dump line.
	DumpWidth = 8
	// DefaultLogSize is the log ring capacity used by the firmware images.
	DefaultLogSize = 1024
)

type Console struct {
	w    io.Writer
	out  *shmring.Ring
	in   *shmring.Ring
	regs *i2cslave.RegisterFile

	line  []byte
	snap  []byte
	chunk [ChunkSize]byte
}

// New queues output for w in a ring of logSize bytes (a power of two).
// in may be nil when the port has no receive path; regs may be nil when
// there is nothing to dump.
func New(w io.Writer, in *shmring.Ring, regs *i2cslave.RegisterFile, logSize int) *Console {
	c := &Console{
		w:    w,
		out:  shmring.New(logSize),
		in:   in,
		regs: regs,
		line: make([]byte, 0, 96),
	}
	if regs != nil {
		c.snap = make([]byte, regs.Len())
	}
	return c
}

// Printf formats into the log ring. A line that does not fit is dropped
// whole and counted in Dropped.
func (c *Console) Printf(format string, a ...any) {
	c.line = fmtx.Appendf(c.line[:0], format, a...)
	c.out.WriteAll(c.line)
}

// Write queues p; it lets the console stand in for fmtx.DefaultOutput.
func (c *Console) Write(p []byte) (int, error) {
	if !c.out.WriteAll(p) {
		return 0, io.ErrShortWrite
	}
	return len(p), nil
}

// Dropped reports log bytes lost to a full ring.
func (c *Console) Dropped() uint32 { return c.out.Dropped() }

// Pending reports queued bytes not yet written to the port.
func (c *Console) Pending() int { return c.out.Available() }

// Pump writes at most one chunk to the port and returns the byte count.
func (c *Console) Pump() int {
	n := c.out.ReadInto(c.chunk[:])
	if n == 0 {
		return 0
	}
	_, _ = c.w.Write(c.chunk[:n])
	return n
}

// Flush drains the whole ring. Fatal paths use it before halting.
func (c *Console) Flush() {
	for c.Pump() > 0 {
	}
}

// Poll answers every received byte: 'd' dumps the register file and
// anything else prints "?".
func (c *Console) Poll() {
	if c.in == nil {
		return
	}
	var b [1]byte
	for c.in.ReadInto(b[:]) == 1 {
		if b[0] == 'd' && c.regs != nil {
			c.Dump()
			continue
		}
		c.out.WriteAll([]byte("?\n"))
	}
}

// Dump queues the register file as hex, DumpWidth bytes per line, each
// line prefixed with its offset.
func (c *Console) Dump() {
	n := c.regs.Snapshot(c.snap)
	for off := 0; off < n; off += DumpWidth {
		end := off + DumpWidth
		if end > n {
			end = n
		}
		l := conv.AppendHex8(c.line[:0], byte(off))
		l = append(l, ':')
		for _, v := range c.snap[off:end] {
			l = append(l, ' ')
			l = conv.AppendHex8(l, v)
		}
		c.line = append(l, '\n')
		c.out.WriteAll(c.line)
	}
}

// Tick serves input and drains one chunk.
func (c *Console) Tick() {
	c.Poll()
	c.Pump()
}
