//go:build rp2040

package hwspin

import (
	"device/arm"
	"device/rp"
	"runtime/volatile"
	"unsafe"
)

var defaultBank Bank = sioBank{}

// sioBank drives the 32 SPINLOCKn registers of the RP2040 SIO block.
//
// Reading SPINLOCKn returns a non-zero value if the read claimed the lock
// and zero if it was already held. Writing any value releases it. If both
// cores read the same register on the same cycle, core 0 wins.
type sioBank struct{}

//go:inline
func spinlockReg(n int) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Add(unsafe.Pointer(&rp.SIO.SPINLOCK0), 4*n))
}

func (sioBank) TryClaim(n int) bool {
	if spinlockReg(n).Get() == 0 {
		return false
	}
	arm.Asm("dmb")
	return true
}

func (sioBank) Release(n int) {
	arm.Asm("dmb")
	spinlockReg(n).Set(0)
}

func (sioBank) Status() uint32 {
	return rp.SIO.SPINLOCK_ST.Get()
}
