package i2cslave

import (
	"sync/atomic"

	"github.com/omzlo/pivoyager-firmware/x/irq"
)

// Direction of a bus transaction as seen by the target.
type Direction uint8

const (
	Write Direction = iota // host writes to us
	Read                   // host reads from us
)

// State of the bus engine.
type State uint8

const (
	Idle State = iota
	AddressMatched
	Receiving
	Transmitting
)

func (s State) String() string {
	switch s {
	case AddressMatched:
		return "address_matched"
	case Receiving:
		return "receiving"
	case Transmitting:
		return "transmitting"
	default:
		return "idle"
	}
}

// Engine is the bus-level state machine. Its four handlers are called from
// interrupt context by the platform's I2C target driver; the main loop only
// observes the transaction counters.
type Engine struct {
	rd *RegisterFile // reads are served from here
	wr *RegisterFile // writes land here

	state State
	dir   Direction
	index int

	rx atomic.Uint32
	tx atomic.Uint32
}

// NewEngine serves reads and writes from the same masked file.
func NewEngine(f *RegisterFile) *Engine {
	return &Engine{rd: f, wr: f}
}

// NewSplitEngine serves reads from live and stores writes into staging; the
// main loop copies accepted values from staging explicitly.
func NewSplitEngine(live, staging *RegisterFile) *Engine {
	return &Engine{rd: live, wr: staging}
}

// AddressMatch starts a transaction in direction dir. A write keeps the
// register index until its first data byte; a read continues from the last
// selected index.
func (e *Engine) AddressMatch(dir Direction) {
	s := irq.Disable()
	e.state = AddressMatched
	e.dir = dir
	irq.Restore(s)
}

// ByteReceived handles one byte written by the host. The first byte after
// the address selects the index; later bytes are merged into the file and
// advance it. Bytes beyond the end are drained and dropped.
func (e *Engine) ByteReceived(b byte) {
	s := irq.Disable()
	defer irq.Restore(s)
	if e.state == AddressMatched {
		e.index = int(b)
		e.state = Receiving
		return
	}
	e.state = Receiving
	if e.index >= e.wr.Len() {
		return
	}
	e.wr.hostWrite(e.index, b)
	e.index++
}

// ByteRequested returns the next byte to transmit.
func (e *Engine) ByteRequested() byte {
	s := irq.Disable()
	defer irq.Restore(s)
	e.state = Transmitting
	if e.index >= e.rd.Len() {
		return Sentinel
	}
	b := e.rd.hostRead(e.index)
	e.index++
	return b
}

// Stop closes the transaction and bumps the counter of the last data phase.
// A transaction that carried no data counts as nothing.
func (e *Engine) Stop() {
	s := irq.Disable()
	switch e.state {
	case Receiving:
		e.rx.Add(1)
	case Transmitting:
		e.tx.Add(1)
	}
	e.state = Idle
	irq.Restore(s)
}

// RX returns the number of completed write transactions.
func (e *Engine) RX() uint32 { return e.rx.Load() }

// TX returns the number of completed read transactions.
func (e *Engine) TX() uint32 { return e.tx.Load() }

// State reports the current bus state; diagnostics only.
func (e *Engine) State() State {
	s := irq.Disable()
	defer irq.Restore(s)
	return e.state
}

// Index reports the current register index; diagnostics only.
func (e *Engine) Index() int {
	s := irq.Disable()
	defer irq.Restore(s)
	return e.index
}
