package hwspin

import (
	"fmt"
	"sync/atomic"
)

// Claim is proof of ownership of hardware spinlock L on a bank.
//
// A Claim is created by ClaimOn or TryClaimOn and released exactly once by
// Release. While it is live no other Claim for the same lock on the same
// bank can exist, whichever core or goroutine asks for it.
type Claim[L Number] struct {
	_        noCopy
	bank     Bank
	released atomic.Bool
}

// ClaimOn claims lock L on b, spinning until it is granted.
//
// There is no timeout and no queue: if the lock is never released the caller
// spins forever, and under sustained contention the hardware's fixed
// tie-break may starve it.
func ClaimOn[L Number](b Bank) *Claim[L] {
	n := mustNum[L]()
	claimSpin(b, n)
	return &Claim[L]{bank: b}
}

// TryClaimOn makes a single attempt to claim lock L on b.
// It never blocks.
func TryClaimOn[L Number](b Bank) (*Claim[L], bool) {
	n := mustNum[L]()
	if !b.TryClaim(n) {
		return nil, false
	}
	return &Claim[L]{bank: b}, true
}

// Release releases the lock. Releasing a Claim twice panics.
func (c *Claim[L]) Release() {
	if !c.released.CompareAndSwap(false, true) {
		panic("hwspin: release of released claim")
	}
	c.bank.Release(numOf[L]())
}

// Num returns the lock number the claim holds.
func (c *Claim[L]) Num() int {
	return numOf[L]()
}

func claimSpin(b Bank, n int) {
	if b.TryClaim(n) {
		return
	}
	var spins int
	for !b.TryClaim(n) {
		spin(&spins)
	}
}

func mustNum[L Number]() int {
	n := numOf[L]()
	if !validNum(n) {
		panic(fmt.Errorf("%w: %d", ErrLockNumberRange, n))
	}
	return n
}
