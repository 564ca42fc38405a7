// Package flashprog is the bootloader side of the field-upgrade protocol:
// a 76-byte register file through which the host erases, reads and writes
// the application image 64 bytes at a time, then hands control to it.
package flashprog

import "github.com/omzlo/pivoyager-firmware/i2cslave"

// Register layout.
var (
	FieldMode    = i2cslave.F8(0)
	FieldVersion = i2cslave.F8(1)
	FieldErr     = i2cslave.F8(2)
	FieldProg    = i2cslave.F8(3)
	FieldMCUID   = i2cslave.F32(4)
	FieldAddr    = i2cslave.F32(8)
	FieldData    = i2cslave.Field{Off: 12, Width: BlockSize}
)

const (
	Size      = 76
	Mode      = 'B'
	Version   = 1
	BlockSize = 64
	Words     = BlockSize / 2
	PageSize  = 1024
)

// Op is a PROG register value.
type Op uint8

const (
	OpNone Op = iota
	OpErasePage
	OpRead
	OpWrite
	OpExit
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpErasePage:
		return "erase"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Mask leaves PROG, ADDR and DATA host-writable.
func Mask() []byte {
	m := make([]byte, Size)
	for _, f := range []i2cslave.Field{FieldProg, FieldAddr, FieldData} {
		for i := int(f.Off); i < f.End(); i++ {
			m[i] = 0xFF
		}
	}
	return m
}

// Region is an inclusive address range.
type Region struct {
	Start, End uint32
}

func (r Region) Contains(addr uint32) bool { return addr >= r.Start && addr <= r.End }

// ContainsBlock reports whether a half-word aligned block of n bytes at addr
// lies entirely inside r.
func (r Region) ContainsBlock(addr, n uint32) bool {
	return addr%2 == 0 && r.Contains(addr) && addr+n-1 >= addr && r.Contains(addr+n-1)
}
