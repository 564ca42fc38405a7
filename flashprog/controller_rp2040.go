//go:build rp2040

package flashprog

import "machine"

const (
	rpEraseBlock = 4096
	rpWritePage  = 256
)

// RP2040Controller presents the flash data area of an rp2040 through the
// Controller register model. Virtual address base maps to offset 0 of
// machine.Flash. Pages are PageSize bytes; erasing one rewrites the rest of
// its 4 KiB hardware block. Addresses below protectBelow behave as
// write-protected.
type RP2040Controller struct {
	base         uint32
	protectBelow uint32

	sr, cr, ar uint32
	keyStage   int

	page  [rpWritePage]byte
	block [rpEraseBlock]byte
}

func NewRP2040Controller(base, protectBelow uint32) *RP2040Controller {
	return &RP2040Controller{base: base, protectBelow: protectBelow, cr: CtrlLock}
}

func (c *RP2040Controller) Status() uint32           { return c.sr }
func (c *RP2040Controller) ClearStatus(flags uint32) { c.sr &^= flags }
func (c *RP2040Controller) Control() uint32          { return c.cr }
func (c *RP2040Controller) SetAddress(addr uint32)   { c.ar = addr }

func (c *RP2040Controller) Unlock(key uint32) {
	switch {
	case c.keyStage == 0 && key == Key1:
		c.keyStage = 1
	case c.keyStage == 1 && key == Key2:
		c.keyStage = 0
		c.cr &^= CtrlLock
	default:
		c.keyStage = 0
	}
}

func (c *RP2040Controller) SetControl(v uint32) {
	if c.cr&CtrlLock != 0 {
		return
	}
	c.cr = v &^ CtrlSTRT
	if v&CtrlSTRT != 0 && v&CtrlPER != 0 {
		c.sr |= c.erase(c.ar)
	}
}

func (c *RP2040Controller) writable(addr uint32) bool {
	return addr >= c.protectBelow && int64(addr-c.base) < machine.Flash.Size()
}

func (c *RP2040Controller) Read16(addr uint32) uint16 {
	var b [2]byte
	if _, err := machine.Flash.ReadAt(b[:], int64(addr-c.base)); err != nil {
		return 0xFFFF
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (c *RP2040Controller) Program16(addr uint32, v uint16) {
	if c.cr&CtrlPG == 0 {
		return
	}
	if !c.writable(addr) {
		c.sr |= StatusWRPErr
		return
	}
	off := int64(addr - c.base)
	at := off &^ (rpWritePage - 1)
	if _, err := machine.Flash.ReadAt(c.page[:], at); err != nil {
		c.sr |= StatusWRPErr
		return
	}
	i := off - at
	if c.page[i] != 0xFF || c.page[i+1] != 0xFF {
		c.sr |= StatusPGErr
		return
	}
	// Reprogramming the rest of the page with its current contents is a
	// no-op on NOR flash.
	c.page[i] = byte(v)
	c.page[i+1] = byte(v >> 8)
	if _, err := machine.Flash.WriteAt(c.page[:], at); err != nil {
		c.sr |= StatusWRPErr
		return
	}
	c.sr |= StatusEOP
}

func (c *RP2040Controller) erase(addr uint32) uint32 {
	if !c.writable(addr) {
		return StatusWRPErr
	}
	off := int64(addr - c.base)
	at := off &^ (rpEraseBlock - 1)
	if _, err := machine.Flash.ReadAt(c.block[:], at); err != nil {
		return StatusWRPErr
	}
	sub := (off - at) &^ (PageSize - 1)
	if erased(c.block[sub : sub+PageSize]) {
		return StatusEOP
	}
	for i := sub; i < sub+PageSize; i++ {
		c.block[i] = 0xFF
	}
	if err := machine.Flash.EraseBlocks(at/rpEraseBlock, 1); err != nil {
		return StatusWRPErr
	}
	for p := int64(0); p < rpEraseBlock; p += rpWritePage {
		chunk := c.block[p : p+rpWritePage]
		if erased(chunk) {
			continue
		}
		if _, err := machine.Flash.WriteAt(chunk, at+p); err != nil {
			return StatusWRPErr
		}
	}
	return StatusEOP
}

func erased(b []byte) bool {
	for _, v := range b {
		if v != 0xFF {
			return false
		}
	}
	return true
}
