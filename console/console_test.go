package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/omzlo/pivoyager-firmware/i2cslave"
	"github.com/omzlo/pivoyager-firmware/x/shmring"
)

func newRig(t *testing.T, n int) (*Console, *bytes.Buffer, *shmring.Ring, *i2cslave.RegisterFile) {
	t.Helper()
	var port bytes.Buffer
	in := shmring.New(16)
	regs := i2cslave.NewRegisterFile(n, nil)
	return New(&port, in, regs, 256), &port, in, regs
}

func TestPrintfIsQueuedUntilPumped(t *testing.T) {
	c, port, _, _ := newRig(t, 8)
	c.Printf("[boot] reason=%d\n", 3)
	if port.Len() != 0 {
		t.Fatal("Printf wrote to the port directly")
	}
	c.Flush()
	if got := port.String(); got != "[boot] reason=3\n" {
		t.Fatalf("port = %q", got)
	}
}

func TestPumpWritesOneChunk(t *testing.T) {
	c, port, _, _ := newRig(t, 8)
	c.Printf("%s\n", strings.Repeat("x", 3*ChunkSize))
	if n := c.Pump(); n != ChunkSize {
		t.Fatalf("Pump = %d", n)
	}
	if port.Len() != ChunkSize || c.Pending() != 2*ChunkSize+1 {
		t.Fatalf("port %d pending %d", port.Len(), c.Pending())
	}
}

func TestFullRingDropsWholeLines(t *testing.T) {
	var port bytes.Buffer
	c := New(&port, nil, nil, 16)
	c.Printf("0123456789\n")
	c.Printf("abcdefghij\n")
	if c.Dropped() != 11 {
		t.Fatalf("dropped = %d", c.Dropped())
	}
	c.Flush()
	if port.String() != "0123456789\n" {
		t.Fatalf("port = %q", port.String())
	}
}

func TestDumpCommand(t *testing.T) {
	c, port, in, regs := newRig(t, 12)
	regs.SetU8(i2cslave.F8(0), 'N')
	regs.SetU32(i2cslave.F32(8), 0xdeadbeef)

	in.WriteFrom([]byte("d"))
	c.Poll()
	c.Flush()

	want := "00: 4e 00 00 00 00 00 00 00\n" +
		"08: ef be ad de\n"
	if got := port.String(); got != want {
		t.Fatalf("dump =\n%s\nwant\n%s", got, want)
	}
}

func TestUnknownCommand(t *testing.T) {
	c, port, in, _ := newRig(t, 8)
	in.WriteFrom([]byte("x\r"))
	c.Tick()
	c.Flush()
	if got := port.String(); got != "?\n?\n" {
		t.Fatalf("port = %q", got)
	}
}
