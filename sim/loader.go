package sim

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/platform"
	"github.com/omzlo/pivoyager-firmware/x/mathx"
)

var (
	ErrImageTooLarge = errors.New("sim: image does not fit the application region")
	ErrVerify        = errors.New("sim: verify mismatch")
)

// Progress is told about every completed block.
type Progress func(op flashprog.Op, addr uint32)

// Program loads image into the application region the way a host tool
// would: erase every page it covers, write it block by block, read it back
// and start it.
func Program(b *platform.BootSim, image []byte, progress Progress) error {
	limit := int(config.AppEnd - config.AppStart + 1)
	if len(image) > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrImageTooLarge, len(image), limit)
	}
	img := pad(image)
	if progress == nil {
		progress = func(flashprog.Op, uint32) {}
	}

	for off := 0; off < len(img); off += config.PageSize {
		addr := uint32(config.AppStart + off)
		setAddr(b, addr)
		if err := command(b, flashprog.OpErasePage); err != nil {
			return fmt.Errorf("erase %08x: %w", addr, err)
		}
		progress(flashprog.OpErasePage, addr)
	}

	setAddr(b, config.AppStart)
	for off := 0; off < len(img); off += flashprog.BlockSize {
		b.Engine.HostWrite(byte(flashprog.FieldData.Off), img[off:off+flashprog.BlockSize]...)
		if err := command(b, flashprog.OpWrite); err != nil {
			return fmt.Errorf("write %08x: %w", config.AppStart+off, err)
		}
		progress(flashprog.OpWrite, uint32(config.AppStart+off))
	}

	setAddr(b, config.AppStart)
	for off := 0; off < len(img); off += flashprog.BlockSize {
		if err := command(b, flashprog.OpRead); err != nil {
			return fmt.Errorf("read %08x: %w", config.AppStart+off, err)
		}
		got := b.Engine.HostRead(byte(flashprog.FieldData.Off), flashprog.BlockSize)
		if !bytes.Equal(got, img[off:off+flashprog.BlockSize]) {
			return fmt.Errorf("%w at %08x", ErrVerify, config.AppStart+off)
		}
		progress(flashprog.OpRead, uint32(config.AppStart+off))
	}

	return command(b, flashprog.OpExit)
}

// pad rounds the image up to whole blocks with erased bytes.
func pad(image []byte) []byte {
	n := int(mathx.CeilDiv(uint(len(image)), flashprog.BlockSize)) * flashprog.BlockSize
	img := bytes.Repeat([]byte{0xFF}, n)
	copy(img, image)
	return img
}

func setAddr(b *platform.BootSim, addr uint32) {
	b.Engine.HostWrite(byte(flashprog.FieldAddr.Off),
		byte(addr), byte(addr>>8), byte(addr>>16), byte(addr>>24))
}

// command issues op, lets the bootloader run it and returns ERR as an error.
func command(b *platform.BootSim, op flashprog.Op) error {
	b.Engine.HostWrite(byte(flashprog.FieldProg.Off), byte(op))
	b.Tick()
	if c := errcode.Code(int8(b.File.U8(flashprog.FieldErr))); c != errcode.OK {
		return c
	}
	return nil
}
