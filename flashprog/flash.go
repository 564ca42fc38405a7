package flashprog

import "github.com/omzlo/pivoyager-firmware/errcode"

// Status register flags. Error and completion flags are cleared by writing
// them back as 1.
const (
	StatusBusy   uint32 = 0x01
	StatusPGErr  uint32 = 0x04
	StatusWRPErr uint32 = 0x10
	StatusEOP    uint32 = 0x20
)

// Control register bits.
const (
	CtrlPG   uint32 = 0x01
	CtrlPER  uint32 = 0x02
	CtrlSTRT uint32 = 0x40
	CtrlLock uint32 = 0x80
)

// Unlock sequence written to the key register.
const (
	Key1 uint32 = 0x45670123
	Key2 uint32 = 0xCDEF89AB
)

// Controller is the register-level view of an embedded flash controller:
// a status register with write-1-to-clear flags, a control register, a key
// register and an address register. Half-word stores act as program
// operations while CtrlPG   is set.
type Controller interface {
	Status() uint32
	ClearStatus(flags uint32)
	Control() uint32
	SetControl(v uint32)
	Unlock(key uint32)
	SetAddress(addr uint32)
	Program16(addr uint32, v uint16)
	Read16(addr uint32) uint16
}

// Flash runs the polling primitives on top of a Controller.
type Flash struct {
	c Controller
}

func NewFlash(c Controller) *Flash { return &Flash{c: c} }

func (f *Flash) set(bits uint32)   { f.c.SetControl(f.c.Control() | bits) }
func (f *Flash) clear(bits uint32) { f.c.SetControl(f.c.Control() &^ bits) }

func (f *Flash) waitIdle() {
	for f.c.Status()&StatusBusy != 0 {
	}
}

// Open waits for the controller to go idle and unlocks it.
func (f *Flash) Open() {
	f.waitIdle()
	if f.c.Control()&CtrlLock != 0 {
		f.c.Unlock(Key1)
		f.c.Unlock(Key2)
	}
}

// ErasePage erases the page holding addr. The busy wait is unbounded.
func (f *Flash) ErasePage(addr uint32) errcode.Code {
	f.set(CtrlPER)
	defer f.clear(CtrlPER)
	f.c.SetAddress(addr)
	f.set(CtrlSTRT)
	f.waitIdle()

	sr := f.c.Status()
	switch {
	case sr&StatusEOP != 0:
		f.c.ClearStatus(StatusEOP)
		return errcode.OK
	case sr&StatusWRPErr != 0:
		f.c.ClearStatus(StatusWRPErr)
		return errcode.ProgramError
	default:
		return errcode.Unexpected
	}
}

// WriteBlock programs data as consecutive half-words from addr. The target
// must already be erased; this is not checked. Programming stops at the
// first failed half-word.
func (f *Flash) WriteBlock(addr uint32, data []uint16) errcode.Code {
	f.set(CtrlPG)
	defer f.clear(CtrlPG)

	for _, w := range data {
		f.c.Program16(addr, w)
		f.waitIdle()

		sr := f.c.Status()
		switch {
		case sr&StatusEOP != 0:
			f.c.ClearStatus(StatusEOP)
		case sr&StatusPGErr != 0:
			f.c.ClearStatus(StatusPGErr)
			return errcode.ProgramError
		case sr&StatusWRPErr != 0:
			f.c.ClearStatus(StatusWRPErr)
			return errcode.WriteProtect
		default:
			return errcode.Unexpected
		}
		addr += 2
	}
	return errcode.OK
}

// ReadBlock fills data with consecutive half-words from addr.
func (f *Flash) ReadBlock(addr uint32, data []uint16) errcode.Code {
	f.waitIdle()
	for i := range data {
		data[i] = f.c.Read16(addr)
		addr += 2
	}
	return errcode.OK
}
