package hwspin

// NumSpinlocks is the number of hardware spinlocks in the SIO block.
const NumSpinlocks = 32

// Bank is the hardware spinlock peripheral: a fixed family of independently
// numbered exclusion tokens shared by every core and every piece of code in
// the system.
//
// Implementations must make TryClaim an acquire operation and Release a
// release operation, so that memory written while a lock is held is visible
// to the next owner.
//
// A Bank is identified by ==, so implementations should be pointer types.
// A Bank whose value is not comparable still works for locking, but Validate
// reports ErrBankNotComparable for cells on it.
type Bank interface {
	// TryClaim makes one attempt to claim lock n. It returns true if the
	// caller now owns the lock and false if someone else holds it.
	TryClaim(n int) bool
	// Release releases lock n. Releasing a lock that is not held is a no-op.
	Release(n int)
	// Status returns a bitmap of the locks currently held, bit n for lock n.
	Status() uint32
}

// Default returns the bank used by a Mutex that was not given one with
// WithBank. On rp2040 targets this is the SIO spinlock register file,
// elsewhere it is a process-wide SimBank.
func Default() Bank {
	return defaultBank
}
