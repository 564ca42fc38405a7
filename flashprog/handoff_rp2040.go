//go:build rp2040

package flashprog

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"

	"github.com/omzlo/pivoyager-firmware/x/irq"
)

const vectorCount = 48

// VTOR needs the table aligned to its size rounded up to a power of two.
var vectorRAM [2 * 64]uint32

var vtor = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED08)))

// VectorHandoff starts an application image stored in the flash data area.
// XIP is where virtual address Base is mapped for execution.
type VectorHandoff struct {
	XIP  uintptr
	Base uint32
}

// Jump copies the application's vector table to RAM, points VTOR at it,
// loads MSP from vector 0 and branches to vector 1. It does not return.
func (h VectorHandoff) Jump(entry uint32) {
	s := irq.Disable()
	src := h.XIP + uintptr(entry-h.Base)
	table := alignedTable()
	for i := range table {
		table[i] = *(*uint32)(unsafe.Pointer(src + uintptr(i*4)))
	}
	vtor.Set(uint32(uintptr(unsafe.Pointer(&table[0]))))
	irq.Restore(s)

	sp, pc := table[0], table[1]
	arm.AsmFull(`
		msr MSP, {sp}
		bx {pc}
	`, map[string]interface{}{"sp": sp, "pc": pc})
	for {
	}
}

func alignedTable() []uint32 {
	p := uintptr(unsafe.Pointer(&vectorRAM[0]))
	skip := ((256 - p%256) % 256) / 4
	return vectorRAM[skip : skip+vectorCount]
}
