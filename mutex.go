package hwspin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Mutex protects a value of type T with hardware spinlock L.
//
// Exclusion is enforced by the spinlock bank, not by a lock word in the
// Mutex: every core, and every other piece of code claiming lock L on the
// same bank, contends with it. Give each logically distinct resource its own
// lock number.
//
// The zero value is an unlocked Mutex holding the zero T on the Default bank,
// so a Mutex can be a plain package-level variable. Constructing one never
// touches the hardware.
//
//	var counter hwspin.Mutex[hwspin.Lock7, int]
//
//	g := counter.Lock()
//	*g.Ptr() += 1
//	g.Unlock()
//
// Deadlock:
// Lock spins until the claim is granted. Calling Lock again while holding a
// Guard of the same Mutex (or of any Mutex on the same lock number) never
// returns. Interrupts are not masked either, so a handler taking the lock
// while the code it interrupted holds it hangs that core.
//
// Fairness:
// None. Waiters poll the bank, nobody queues. If both cores of an RP2040 read
// the register on the same cycle core 0 wins, so core 1 can be starved under
// sustained contention.
//
// A Mutex must not be copied after first use.
type Mutex[L Number, T any] struct {
	_      noCopy
	bank   Bank
	shared bool

	once   sync.Once
	tok    *token
	err    error
	closed atomic.Bool

	// live is set while a Guard exists. It double checks the bank's
	// exclusion so that a second grant panics instead of aliasing data.
	live atomic.Bool

	data T
}

// Option configures a Mutex created by New.
type Option func(*options)

type options struct {
	bank   Bank
	shared bool
}

// WithBank makes the Mutex claim its lock on b instead of Default().
func WithBank(b Bank) Option {
	return func(o *options) {
		o.bank = b
	}
}

// WithShared declares that the caller intends other cells to use the same
// lock number. Validate only accepts the binding if every live cell on that
// number was created WithShared.
func WithShared() Option {
	return func(o *options) {
		o.shared = true
	}
}

// New returns an unlocked Mutex protecting v.
func New[L Number, T any](v T, opts ...Option) *Mutex[L, T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Mutex[L, T]{
		bank:   o.bank,
		shared: o.shared,
		data:   v,
	}
}

// Lock acquires lock L, spinning until it is available, and returns the
// Guard giving access to the value. Release it with Guard.Unlock, usually
// deferred, or with Mutex.Unlock.
//
// Lock panics only if the lock number is out of range. Sharing a lock number
// with another Mutex does not make Lock fail; Validate reports it.
func (m *Mutex[L, T]) Lock() *Guard[L, T] {
	n := m.mustBind()
	claimSpin(m.bank, n)
	return m.grant(n)
}

// TryLock makes a single attempt to acquire lock L. It never blocks and
// returns false if someone else holds the lock. A caller wanting a bounded
// wait retries TryLock in its own loop.
func (m *Mutex[L, T]) TryLock() (*Guard[L, T], bool) {
	n := m.mustBind()
	if !m.bank.TryClaim(n) {
		return nil, false
	}
	return m.grant(n), true
}

// Unlock releases g right away. It is the same as g.Unlock, and panics if g
// was obtained from a different Mutex.
func (m *Mutex[L, T]) Unlock(g *Guard[L, T]) {
	if g.m != m {
		panic("hwspin: unlock of guard from another Mutex")
	}
	g.Unlock()
}

// Do runs fn with the value locked. The lock is released when fn returns,
// including when it panics.
func (m *Mutex[L, T]) Do(fn func(v *T)) {
	g := m.Lock()
	defer g.Unlock()
	fn(g.Ptr())
}

// Validate checks the lock number and binds it to m without touching the
// hardware. It returns ErrLockNumberRange, wrapped with the lock number, for
// a number Lock and TryLock would panic on. It returns ErrLockNumberInUse
// if, when m was first bound, another Mutex that was neither closed nor
// collected held lock number L on the same bank, and ErrBankNotComparable
// if the bank cannot be tracked.
//
// The first Lock, TryLock or Validate binds m; later calls return the same
// result.
func (m *Mutex[L, T]) Validate() error {
	m.once.Do(m.bind)
	return m.err
}

// Close releases m's binding to lock number L, so a Mutex created later on
// the same number validates cleanly. A Mutex that goes out of scope without
// Close is unbound once it is garbage collected.
//
// Close does not release a held Guard. m stays usable for locking but is not
// bound again. Close is idempotent.
func (m *Mutex[L, T]) Close() {
	m.once.Do(m.bind)
	if m.tok == nil || !m.closed.CompareAndSwap(false, true) {
		return
	}
	unbind(m.bank, numOf[L](), m.tok, m.shared)
}

// Num returns the hardware lock number of m.
func (m *Mutex[L, T]) Num() int {
	return numOf[L]()
}

func (m *Mutex[L, T]) bind() {
	if m.bank == nil {
		m.bank = Default()
	}
	n := numOf[L]()
	if !validNum(n) {
		m.err = fmt.Errorf("%w: %d", ErrLockNumberRange, n)
		return
	}
	tok := &token{}
	if m.err = bind(m.bank, n, tok, m.shared); m.err == nil {
		m.tok = tok
	}
}

func (m *Mutex[L, T]) mustBind() int {
	m.once.Do(m.bind)
	if errors.Is(m.err, ErrLockNumberRange) {
		panic(m.err)
	}
	return numOf[L]()
}

// grant is called with lock n claimed.
func (m *Mutex[L, T]) grant(n int) *Guard[L, T] {
	if !m.live.CompareAndSwap(false, true) {
		m.bank.Release(n)
		panic(fmt.Sprintf("hwspin: lock %d granted while a guard is live", n))
	}
	return &Guard[L, T]{
		claim: Claim[L]{bank: m.bank},
		m:     m,
	}
}
