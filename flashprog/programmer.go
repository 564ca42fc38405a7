package flashprog

import (
	"github.com/omzlo/pivoyager-firmware/command"
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/i2cslave"
)

// Handoff transfers control to the application image whose vector table
// starts at entry. Hardware implementations never return.
type Handoff interface {
	Jump(entry uint32)
}

// Logger is the subset of the debug console used here.
type Logger interface {
	Printf(format string, args ...any)
}

type Config struct {
	App   Region
	MCUID uint32
}

// Programmer executes host commands against the application flash region.
type Programmer struct {
	file  *i2cslave.RegisterFile
	poll  *command.Poller
	flash *Flash
	jump  Handoff
	log   Logger
	app   Region

	buf [Words]uint16
}

// New initialises file with the bootloader identity and the cursor at the
// start of the application region.
func New(file *i2cslave.RegisterFile, rx command.Counter, fl *Flash, h Handoff, log Logger, cfg Config) *Programmer {
	file.Atomic(func(tx i2cslave.Tx) {
		raw := tx.Raw(i2cslave.Field{Off: 0, Width: Size})
		for i := range raw {
			raw[i] = 0
		}
		tx.SetU8(FieldMode, Mode)
		tx.SetU8(FieldVersion, Version)
		tx.SetU32(FieldMCUID, cfg.MCUID)
		tx.SetU32(FieldAddr, cfg.App.Start)
	})
	p := &Programmer{
		file:  file,
		flash: fl,
		jump:  h,
		log:   log,
		app:   cfg.App,
		poll: command.NewPoller(file, rx, command.Config{
			Opcode: FieldProg,
			Err:    FieldErr,
		}),
	}
	fl.Open()
	return p
}

// Tick runs at most one pending command. It reports whether the host was
// active since the previous tick.
func (p *Programmer) Tick() bool {
	cmd, ok := p.poll.Poll()
	if ok {
		code := p.execute(Op(cmd.Op))
		p.poll.Complete(cmd, code)
		if code != errcode.OK {
			p.log.Printf("[boot] %s failed: %d\n", Op(cmd.Op), int8(code))
		}
	}
	return p.poll.Activity()
}

func (p *Programmer) execute(op Op) errcode.Code {
	addr := p.file.U32(FieldAddr)
	// Erase takes any address inside the page; block transfers must fit
	// whole so a command never runs partially.
	ok := p.app.ContainsBlock(addr, BlockSize)

	switch op {
	case OpErasePage:
		if !p.app.Contains(addr) {
			return errcode.AddressRange
		}
		return p.flash.ErasePage(addr)

	case OpRead:
		code := errcode.AddressRange
		if ok {
			code = p.flash.ReadBlock(addr, p.buf[:])
		}
		p.file.Atomic(func(tx i2cslave.Tx) {
			if ok {
				putWords(tx.Raw(FieldData), p.buf[:])
			}
			tx.SetU32(FieldAddr, addr+BlockSize)
		})
		return code

	case OpWrite:
		code := errcode.AddressRange
		if ok {
			p.file.Atomic(func(tx i2cslave.Tx) { getWords(p.buf[:], tx.Raw(FieldData)) })
			code = p.flash.WriteBlock(addr, p.buf[:])
		}
		p.file.SetU32(FieldAddr, addr+BlockSize)
		return code

	case OpExit:
		p.log.Printf("[boot] starting application at %08x\n", p.app.Start)
		p.jump.Jump(p.app.Start)
		return errcode.OK

	default:
		return errcode.UnknownCommand
	}
}

func putWords(dst []byte, src []uint16) {
	for i, w := range src {
		dst[2*i] = byte(w)
		dst[2*i+1] = byte(w >> 8)
	}
}

func getWords(dst []uint16, src []byte) {
	for i := range dst {
		dst[i] = uint16(src[2*i]) | uint16(src[2*i+1])<<8
	}
}

// ShouldEnter reports whether the bootloader stays resident: only after a
// cold power-on reset with the button held. Any other start goes straight
// to the application.
func ShouldEnter(powerOnReset, buttonHeld bool) bool {
	return powerOnReset && buttonHeld
}
