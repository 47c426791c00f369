//go:build !rp2040

package hwspin

import (
	"runtime"
	_ "unsafe" // for linkname
)

// spin is called between two failed claim attempts. It busy-waits through
// the runtime's active-spin budget first, then hands the processor to
// another goroutine so the emulated "other core" can make progress. There is
// no timed sleep: the waiter keeps polling the bank and never queues.
func spin(spins *int) {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return
	}
	*spins = 0
	runtime.Gosched()
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
