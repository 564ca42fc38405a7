// Package i2cslave implements the virtual-register transport exposed to the
// host: a fixed-size register file with an optional per-byte write mask and
// the interrupt-driven engine that maps bus transactions onto it.
package i2cslave

import (
	"github.com/omzlo/pivoyager-firmware/x/irq"
	"github.com/omzlo/pivoyager-firmware/x/mathx"
)

// Sentinel is returned to the host for reads past the end of the file.
const Sentinel byte = 0xEE

// MaxLen is the largest addressable file; the register index is one byte.
const MaxLen = 256

// Field locates a register inside the file. Multi-byte fields are
// little-endian, matching the layout the host library packs.
type Field struct {
	Off   uint8
	Width uint8
}

// F8, F16 and F32 build fields of the usual widths.
func F8(off uint8) Field  { return Field{Off: off, Width: 1} }
func F16(off uint8) Field { return Field{Off: off, Width: 2} }
func F32(off uint8) Field { return Field{Off: off, Width: 4} }

// End returns the offset one past the field.
func (f Field) End() int { return int(f.Off) + int(f.Width) }

// RegisterFile is the byte buffer exchanged with the host.
//
// Length and mask are fixed at construction. A mask bit of 1 marks a
// host-writable bit; device-owned bits survive host writes untouched.
// Index 0 (mode/identity) is never host-writable, mask or not.
type RegisterFile struct {
	buf  []byte
	mask []byte
	gen  []uint8 // host writes per byte, wrapping
}

// NewRegisterFile allocates a file of length bytes. mask may be nil (every
// byte but index 0 writable) or exactly length bytes long.
func NewRegisterFile(length int, mask []byte) *RegisterFile {
	if length < 1 || length > MaxLen {
		panic("i2cslave: register file length out of range")
	}
	if mask != nil && len(mask) != length {
		panic("i2cslave: mask length mismatch")
	}
	f := &RegisterFile{buf: make([]byte, length), gen: make([]uint8, length)}
	if mask != nil {
		f.mask = append([]byte(nil), mask...)
	}
	return f
}

// Len returns the fixed length of the file.
func (f *RegisterFile) Len() int { return len(f.buf) }

// WriteMask returns the host-writable bits of byte i.
func (f *RegisterFile) WriteMask(i int) byte {
	if i <= 0 || i >= len(f.buf) {
		return 0
	}
	if f.mask == nil {
		return 0xFF
	}
	return f.mask[i]
}

// hostWrite merges b into byte i under the write mask. Caller holds the
// critical section. Out-of-range indices are ignored.
func (f *RegisterFile) hostWrite(i int, b byte) {
	if i >= len(f.buf) {
		return
	}
	m := f.WriteMask(i)
	f.buf[i] = (f.buf[i] &^ m) | (b & m)
	f.gen[i]++
}

// hostRead returns byte i or Sentinel. Caller holds the critical section.
func (f *RegisterFile) hostRead(i int) byte {
	if i < 0 || i >= len(f.buf) {
		return Sentinel
	}
	return f.buf[i]
}

// Atomic runs fn with interrupts disabled. fn must not call the locking
// accessors of f; use the Tx it receives.
func (f *RegisterFile) Atomic(fn func(tx Tx)) {
	s := irq.Disable()
	defer irq.Restore(s)
	fn(Tx{f: f})
}

// Snapshot copies the file into dst and returns the byte count.
func (f *RegisterFile) Snapshot(dst []byte) int {
	s := irq.Disable()
	n := copy(dst, f.buf)
	irq.Restore(s)
	return n
}

// Bytes copies n bytes starting at off; the range is clamped to the file.
func (f *RegisterFile) Bytes(off, n int) []byte {
	off = mathx.Clamp(off, 0, len(f.buf))
	end := mathx.Clamp(off+n, off, len(f.buf))
	out := make([]byte, end-off)
	s := irq.Disable()
	copy(out, f.buf[off:end])
	irq.Restore(s)
	return out
}

func (f *RegisterFile) U8(fl Field) uint8 {
	s := irq.Disable()
	defer irq.Restore(s)
	return Tx{f}.U8(fl)
}

func (f *RegisterFile) SetU8(fl Field, v uint8) {
	s := irq.Disable()
	defer irq.Restore(s)
	Tx{f}.SetU8(fl, v)
}

func (f *RegisterFile) U16(fl Field) uint16 {
	s := irq.Disable()
	defer irq.Restore(s)
	return Tx{f}.U16(fl)
}

func (f *RegisterFile) SetU16(fl Field, v uint16) {
	s := irq.Disable()
	defer irq.Restore(s)
	Tx{f}.SetU16(fl, v)
}

func (f *RegisterFile) U32(fl Field) uint32 {
	s := irq.Disable()
	defer irq.Restore(s)
	return Tx{f}.U32(fl)
}

func (f *RegisterFile) SetU32(fl Field, v uint32) {
	s := irq.Disable()
	defer irq.Restore(s)
	Tx{f}.SetU32(fl, v)
}

// Tx is an unlocked view of a RegisterFile, valid only inside Atomic.
// Device-side writes ignore the write mask.
type Tx struct{ f *RegisterFile }

func (t Tx) U8(fl Field) uint8 { return t.f.buf[fl.Off] }

// Generation counts host writes to the first byte of fl. A changed value
// means the host wrote that byte again, even with identical contents.
func (t Tx) Generation(fl Field) uint8 { return t.f.gen[fl.Off] }

func (t Tx) SetU8(fl Field, v uint8) { t.f.buf[fl.Off] = v }

func (t Tx) U16(fl Field) uint16 {
	b := t.f.buf[fl.Off : fl.Off+2]
	return uint16(b[0]) | uint16(b[1])<<8
}

func (t Tx) SetU16(fl Field, v uint16) {
	b := t.f.buf[fl.Off : fl.Off+2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func (t Tx) U32(fl Field) uint32 {
	b := t.f.buf[fl.Off : fl.Off+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (t Tx) SetU32(fl Field, v uint32) {
	b := t.f.buf[fl.Off : fl.Off+4]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Raw exposes the backing bytes of a field for bulk copies.
func (t Tx) Raw(fl Field) []byte { return t.f.buf[fl.Off:fl.End()] }
