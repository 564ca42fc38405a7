//go:build rp2040

package platform

import (
	"device/rp"
	"machine"
)

// standbyMagic in watchdog scratch 0 marks a reset issued by Standby.
const standbyMagic = 0x5741_4B45

var (
	bootCause   uint16
	bootSampled bool
)

// BootReason decodes the reset cause once per boot.
func BootReason() uint16 {
	if bootSampled {
		return bootCause
	}
	bootSampled = true
	cr := rp.VREG_AND_CHIP_RESET.CHIP_RESET.Get()
	if cr&rp.VREG_AND_CHIP_RESET_CHIP_RESET_HAD_POR != 0 {
		bootCause |= BootPOR
	}
	if cr&rp.VREG_AND_CHIP_RESET_CHIP_RESET_HAD_RUN != 0 {
		bootCause |= BootRunPin
	}
	if cr&rp.VREG_AND_CHIP_RESET_CHIP_RESET_HAD_PSM_RESTART != 0 {
		bootCause |= BootDebug
	}
	if rp.WATCHDOG.REASON.Get() != 0 {
		bootCause |= BootWatchdog
	}
	if rp.WATCHDOG.SCRATCH0.Get() == standbyMagic {
		bootCause |= BootStandbyWake
		rp.WATCHDOG.SCRATCH0.Set(0)
	}
	return bootCause
}

// PowerOnReset reports a cold start.
func PowerOnReset() bool { return BootReason()&BootPOR != 0 }

// MCUID folds the flash unique ID into the 32-bit identity word.
func MCUID() uint32 {
	var id uint32
	for i, b := range machine.DeviceID() {
		id ^= uint32(b) << (8 * (i % 4))
	}
	return id
}
