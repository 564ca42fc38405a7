package sim

import (
	"errors"
	"io"
	"testing"

	"github.com/omzlo/pivoyager-firmware/config"
	"github.com/omzlo/pivoyager-firmware/errcode"
	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/platform"
)

func TestProgramWritesVerifiesAndStarts(t *testing.T) {
	b := platform.NewBootSim(1, io.Discard)
	image := make([]byte, 1500)
	for i := range image {
		image[i] = byte(i * 7)
	}
	counts := map[flashprog.Op]int{}
	err := Program(b, image, func(op flashprog.Op, _ uint32) { counts[op]++ })
	if err != nil {
		t.Fatal(err)
	}
	// 1500 bytes cover two pages and 24 blocks.
	if counts[flashprog.OpErasePage] != 2 || counts[flashprog.OpWrite] != 24 || counts[flashprog.OpRead] != 24 {
		t.Fatalf("progress %v", counts)
	}
	got := b.Flash.Bytes(config.AppStart, 1536)
	for i := range image {
		if got[i] != image[i] {
			t.Fatalf("flash[%d] = %#x, want %#x", i, got[i], image[i])
		}
	}
	for i := len(image); i < len(got); i++ {
		if got[i] != 0xFF {
			t.Fatalf("padding byte %d = %#x", i, got[i])
		}
	}
	if b.Handoff.Jumps != 1 || b.Handoff.Entry != config.AppStart {
		t.Fatalf("handoff %+v", b.Handoff)
	}
}

func TestProgramRejectsOversizedImage(t *testing.T) {
	b := platform.NewBootSim(1, io.Discard)
	err := Program(b, make([]byte, config.AppEnd-config.AppStart+2), nil)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err = %v", err)
	}
}

func TestProgramReportsFlashErrors(t *testing.T) {
	b := platform.NewBootSim(1, io.Discard)
	b.Flash.Protect(config.AppStart)
	err := Program(b, []byte{1, 2, 3}, nil)
	var code errcode.Code
	if !errors.As(err, &code) || code != errcode.ProgramError {
		t.Fatalf("err = %v", err)
	}
}
