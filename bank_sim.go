//go:build !rp2040

package hwspin

import (
	"sync/atomic"

	"github.com/llxisdsh/hwspin/internal/opt"
)

var defaultBank Bank = NewSimBank()

// SimBank emulates the SIO spinlock registers on hosted targets.
//
// Each lock is a padded 32-bit register: reading it claims the lock when it
// is free, writing to it releases the lock. The emulation adds per-lock
// counters so tests and the simulator can observe contention.
//
// The zero value is ready to use.
type SimBank struct {
	_     noCopy
	regs  [NumSpinlocks]opt.Register_
	stats [NumSpinlocks]simStats
}

type simStats struct {
	claims atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of the counters of one emulated spinlock.
type Stats struct {
	// Claims is the number of successful claims.
	Claims uint64
	// Misses is the number of claim attempts that found the lock held.
	Misses uint64
}

// NewSimBank returns an emulated bank with every lock released.
func NewSimBank() *SimBank {
	return &SimBank{}
}

// TryClaim implements Bank.
func (b *SimBank) TryClaim(n int) bool {
	if b.regs[n].V.CompareAndSwap(0, 1) {
		b.stats[n].claims.Add(1)
		return true
	}
	b.stats[n].misses.Add(1)
	return false
}

// Release implements Bank.
func (b *SimBank) Release(n int) {
	b.regs[n].V.Store(0)
}

// Status implements Bank.
func (b *SimBank) Status() uint32 {
	var st uint32
	for i := range b.regs {
		if b.regs[i].V.Load() != 0 {
			st |= 1 << i
		}
	}
	return st
}

// Stats returns the counters of lock n.
func (b *SimBank) Stats(n int) Stats {
	return Stats{
		Claims: b.stats[n].claims.Load(),
		Misses: b.stats[n].misses.Load(),
	}
}

// Reset releases every lock and clears the counters, like the reset a
// firmware performs on the real block after restarting a core that may
// have died holding a lock.
//
// Any Claim or Guard still live on this bank becomes meaningless.
func (b *SimBank) Reset() {
	for i := range b.regs {
		b.regs[i].V.Store(0)
		b.stats[i].claims.Store(0)
		b.stats[i].misses.Store(0)
	}
}
