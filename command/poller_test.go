package command

import (
	"testing"

	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
)

var (
	fOp  = i2cslave.F8(1)
	fErr = i2cslave.F8(2)
	fArg = i2cslave.F8(3)
)

func newRig(bitwise bool) (*i2cslave.RegisterFile, *i2cslave.Engine, *Poller) {
	f := i2cslave.NewRegisterFile(4, []byte{0x00, 0xFF, 0x00, 0xFF})
	e := i2cslave.NewEngine(f)
	p := NewPoller(f, e, Config{Opcode: fOp, Err: fErr, Bitwise: bitwise})
	return f, e, p
}

func TestPollRequiresNewTransaction(t *testing.T) {
	f, e, p := newRig(false)

	f.SetU8(fOp, 2) // device-side write, no bus transaction
	if _, ok := p.Poll(); ok {
		t.Fatal("command returned without a transaction")
	}

	e.HostWrite(1, 3)
	cmd, ok := p.Poll()
	if !ok || cmd.Op != 3 {
		t.Fatalf("Poll = %+v,%v, want op 3", cmd, ok)
	}
	if !p.Activity() {
		t.Fatal("activity not reported")
	}
	if _, ok := p.Poll(); ok {
		t.Fatal("same transaction returned twice")
	}
	if p.Activity() {
		t.Fatal("activity reported without a transaction")
	}
}

func TestPollIgnoresZeroOpcode(t *testing.T) {
	_, e, p := newRig(false)
	e.HostWrite(3, 0x55)
	if _, ok := p.Poll(); ok {
		t.Fatal("zero opcode returned")
	}
	if !p.Activity() {
		t.Fatal("parameter-only write should still count as activity")
	}
}

func TestCompleteWritesErrorThenClears(t *testing.T) {
	f, e, p := newRig(false)
	e.HostWrite(1, 4)
	cmd, _ := p.Poll()
	p.Complete(cmd, errcode.AddressRange)

	if f.U8(fOp) != 0 {
		t.Fatalf("opcode = %d, want 0", f.U8(fOp))
	}
	if int8(f.U8(fErr)) != int8(errcode.AddressRange) {
		t.Fatalf("err = %d, want -4", int8(f.U8(fErr)))
	}
}

func TestReplacementDuringExecutionIsNotLost(t *testing.T) {
	f, e, p := newRig(false)
	e.HostWrite(1, 2)
	first, _ := p.Poll()

	// Host issues the next command while the first is executing.
	e.HostWrite(1, 3)
	p.Complete(first, errcode.OK)

	if f.U8(fOp) != 3 {
		t.Fatalf("opcode = %d, want replacement 3 kept", f.U8(fOp))
	}
	second, ok := p.Poll()
	if !ok || second.Op != 3 {
		t.Fatalf("Poll = %+v,%v, want op 3", second, ok)
	}
	p.Complete(second, errcode.OK)
	if _, ok := p.Poll(); ok {
		t.Fatal("command executed twice")
	}
}

func TestBitwiseRewriteKeepsAllBits(t *testing.T) {
	f, e, p := newRig(true)
	e.HostWrite(1, 0x01)
	first, _ := p.Poll()

	e.HostWrite(1, 0x01|0x08)
	p.Complete(first, errcode.OK)

	if got := f.U8(fOp); got != 0x09 {
		t.Fatalf("opcode = %#x, want 0x09 as written", got)
	}
	next, ok := p.Poll()
	if !ok || !next.Has(0x08) || !next.Has(0x01) {
		t.Fatalf("Poll = %+v,%v, want 0x09", next, ok)
	}
}

func TestBitwiseClearsOnlyExecutedBits(t *testing.T) {
	f, e, p := newRig(true)
	e.HostWrite(1, 0x03)
	cmd, _ := p.Poll()
	f.Atomic(func(tx i2cslave.Tx) { tx.SetU8(fOp, 0x07) }) // device-side, no host write
	p.Complete(cmd, errcode.OK)
	if got := f.U8(fOp); got != 0x04 {
		t.Fatalf("opcode = %#x, want 0x04", got)
	}
}

func TestIdenticalReissueIsNotLost(t *testing.T) {
	for _, bitwise := range []bool{false, true} {
		f, e, p := newRig(bitwise)
		e.HostWrite(1, 0x02)
		first, ok := p.Poll()
		if !ok {
			t.Fatalf("bitwise=%v: first command not seen", bitwise)
		}

		// Same opcode again, in its own transaction, before completion.
		e.HostWrite(1, 0x02)
		p.Complete(first, errcode.OK)

		if got := f.U8(fOp); got != 0x02 {
			t.Fatalf("bitwise=%v: opcode = %#x, want 0x02 kept", bitwise, got)
		}
		second, ok := p.Poll()
		if !ok || second.Op != 0x02 {
			t.Fatalf("bitwise=%v: Poll = %+v,%v, want re-issued 0x02", bitwise, second, ok)
		}
		p.Complete(second, errcode.OK)
		if f.U8(fOp) != 0 {
			t.Fatalf("bitwise=%v: opcode = %#x after second completion", bitwise, f.U8(fOp))
		}
		if _, ok := p.Poll(); ok {
			t.Fatalf("bitwise=%v: command executed three times", bitwise)
		}
	}
}

func TestParametersTravelWithOpcode(t *testing.T) {
	f, e, p := newRig(true)
	e.HostWrite(1, 0x02, 0x00, 0x7F) // err byte is device-owned
	cmd, ok := p.Poll()
	if !ok || !cmd.Has(0x02) {
		t.Fatalf("Poll = %+v,%v", cmd, ok)
	}
	if f.U8(fArg) != 0x7F {
		t.Fatalf("arg = %#x, want 0x7f", f.U8(fArg))
	}
}
