package flashprog

// SimController emulates a small embedded flash controller in RAM. It is
// used by the host simulator and tests.
//
// Pages erase to 0xFF. Programming a half-word that is not erased raises
// PGERR, programming or erasing a protected page raises WRPERR. Every
// operation keeps BSY asserted for BusyPolls status reads.
type SimController struct {
	Base     uint32
	PageSize uint32

	// BusyPolls is how many Status reads see BSY after each operation.
	BusyPolls int

	mem       []byte
	protected map[uint32]bool
	sr, cr    uint32
	ar        uint32
	keyStage  int
	busy      int
	glitch    bool

	Erases, Programs int
}

// NewSimController returns an erased, locked flash of size bytes at base.
func NewSimController(base, size, pageSize uint32) *SimController {
	s := &SimController{
		Base:      base,
		PageSize:  pageSize,
		mem:       make([]byte, size),
		protected: make(map[uint32]bool),
		cr:        CtrlLock,
	}
	for i := range s.mem {
		s.mem[i] = 0xFF
	}
	return s
}

// Protect write-protects the page containing addr.
func (s *SimController) Protect(addr uint32) { s.protected[s.page(addr)] = true }

// Glitch makes the next operation finish with no completion or error flag.
func (s *SimController) Glitch() { s.glitch = true }

// Load copies image into flash at addr, bypassing the controller.
func (s *SimController) Load(addr uint32, image []byte) {
	copy(s.mem[addr-s.Base:], image)
}

// Bytes returns a copy of n bytes at addr.
func (s *SimController) Bytes(addr uint32, n int) []byte {
	off := addr - s.Base
	return append([]byte(nil), s.mem[off:off+uint32(n)]...)
}

func (s *SimController) page(addr uint32) uint32 { return (addr - s.Base) / s.PageSize }

func (s *SimController) inRange(addr uint32) bool {
	return addr >= s.Base && addr-s.Base < uint32(len(s.mem))
}

func (s *SimController) Status() uint32 {
	if s.busy > 0 {
		s.busy--
		return s.sr | StatusBusy
	}
	return s.sr
}

func (s *SimController) ClearStatus(flags uint32) {
	s.sr &^= flags & (StatusEOP | StatusPGErr | StatusWRPErr)
}

func (s *SimController) Control() uint32 { return s.cr }

func (s *SimController) SetControl(v uint32) {
	if s.cr&CtrlLock != 0 {
		return
	}
	s.cr = v &^ CtrlSTRT
	if v&CtrlSTRT != 0 && v&CtrlPER != 0 {
		s.erase(s.ar)
	}
}

func (s *SimController) Unlock(key uint32) {
	switch {
	case s.keyStage == 0 && key == Key1:
		s.keyStage = 1
	case s.keyStage == 1 && key == Key2:
		s.keyStage = 0
		s.cr &^= CtrlLock
	default:
		s.keyStage = 0
	}
}

func (s *SimController) SetAddress(addr uint32) { s.ar = addr }

func (s *SimController) Program16(addr uint32, v uint16) {
	if s.cr&CtrlPG == 0 || !s.inRange(addr) || addr&1 != 0 {
		return
	}
	if s.finish() {
		return
	}
	s.Programs++
	off := addr - s.Base
	switch {
	case s.protected[s.page(addr)]:
		s.sr |= StatusWRPErr
	case s.mem[off] != 0xFF || s.mem[off+1] != 0xFF:
		s.sr |= StatusPGErr
	default:
		s.mem[off] = byte(v)
		s.mem[off+1] = byte(v >> 8)
		s.sr |= StatusEOP
	}
}

func (s *SimController) Read16(addr uint32) uint16 {
	if !s.inRange(addr) {
		return 0xFFFF
	}
	off := addr - s.Base
	return uint16(s.mem[off]) | uint16(s.mem[off+1])<<8
}

func (s *SimController) erase(addr uint32) {
	if !s.inRange(addr) || s.finish() {
		return
	}
	s.Erases++
	p := s.page(addr)
	if s.protected[p] {
		s.sr |= StatusWRPErr
		return
	}
	start := p * s.PageSize
	for i := start; i < start+s.PageSize; i++ {
		s.mem[i] = 0xFF
	}
	s.sr |= StatusEOP
}

// finish starts the busy window and consumes a pending glitch.
func (s *SimController) finish() bool {
	s.busy = s.BusyPolls
	if s.glitch {
		s.glitch = false
		return true
	}
	return false
}

// SimHandoff records jumps instead of leaving the caller.
type SimHandoff struct {
	Jumps int
	Entry uint32
}

func (h *SimHandoff) Jump(entry uint32) {
	h.Jumps++
	h.Entry = entry
}
