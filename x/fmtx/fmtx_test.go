package fmtx

import (
	"bytes"
	"errors"
	"testing"
)

type opName struct{}

func (opName) String() string { return "erase" }

func TestSprintfVerbs(t *testing.T) {
	type C struct {
		fmt  string
		args []any
		want string
	}
	for _, c := range []C{
		{"hello %s", []any{"world"}, "hello world"},
		{"num %d hex %x HEX %X", []any{255, 255, 255}, "num 255 hex ff HEX FF"},
		{"bool %t %t", []any{true, false}, "bool true false"},
		{"literal %%", nil, "literal %"},
		{"q=%q", []any{"a\"b\\c"}, `q="a\"b\\c"`},
		{"v=%v", []any{123}, "v=123"},
		{"trim: %.3s", []any{"abcdef"}, "trim: abc"},
		{"%02x:%02x", []any{uint8(0x0a), uint8(0xff)}, "0a:ff"},
		{"addr=%08X", []any{uint32(0x8002000)}, "addr=08002000"},
		{"[%4d]", []any{-7}, "[  -7]"},
		{"err=%d", []any{int8(-100)}, "err=-100"},
		{"op %s", []any{opName{}}, "op erase"},
		{"why %v", []any{errors.New("timeout")}, "why timeout"},
	} {
		got := Sprintf(c.fmt, c.args...)
		if got != c.want {
			t.Fatalf("Sprintf(%q, ...) = %q, want %q", c.fmt, got, c.want)
		}
	}
}

func TestAppendfReusesBuffer(t *testing.T) {
	scratch := make([]byte, 0, 32)
	out := Appendf(scratch, "ADC %d\n", 1234)
	if string(out) != "ADC 1234\n" {
		t.Fatalf("Appendf = %q", out)
	}
	out = Appendf(out[:0], "x")
	if string(out) != "x" || &out[0] != &scratch[:1][0] {
		t.Fatalf("Appendf did not write into the scratch buffer")
	}
}

func TestSprintAndPrint(t *testing.T) {
	var buf bytes.Buffer
	old := DefaultOutput
	DefaultOutput = &buf
	defer func() { DefaultOutput = old }()

	if got, want := Sprint("id", 1, true), "id1 true"; got != want {
		t.Fatalf("Sprint = %q, want %q", got, want)
	}

	n, err := Print("x")
	if err != nil || n != 1 {
		t.Fatalf("Print = %d, %v", n, err)
	}
	if got := buf.String(); got != "x" {
		t.Fatalf("Print wrote %q", got)
	}

	buf.Reset()
	_, _ = Printf("v=%d", 7)
	if got, want := buf.String(), "v=7"; got != want {
		t.Fatalf("Printf wrote %q, want %q", got, want)
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Fprintf(&buf, "hi %s", "there"); err != nil {
		t.Fatalf("Fprintf error: %v", err)
	}
	if got, want := buf.String(), "hi there"; got != want {
		t.Fatalf("Fprintf wrote %q, want %q", got, want)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf("bad %s: %d", "thing", 3)
	if err == nil || err.Error() != "bad thing: 3" {
		t.Fatalf("Errorf = %v", err)
	}
}
