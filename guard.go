package hwspin

// Guard is proof that the caller holds lock L and the only way to reach the
// value of its Mutex. It bundles the hardware Claim with access to the data.
//
// A Guard is released exactly once, by Unlock or Mutex.Unlock. Any use after
// that panics. Go has no scope-end destructors, so release it with defer:
//
//	g := m.Lock()
//	defer g.Unlock()
//
// A Guard may be handed to another goroutine, but only one goroutine may use
// it at a time.
type Guard[L Number, T any] struct {
	claim Claim[L]
	m     *Mutex[L, T]
}

// Load returns a copy of the protected value.
func (g *Guard[L, T]) Load() T {
	g.check()
	return g.m.data
}

// Store replaces the protected value.
func (g *Guard[L, T]) Store(v T) {
	g.check()
	g.m.data = v
}

// Ptr returns a pointer to the protected value. The pointer is only valid
// until the guard is released and must not be retained past that point.
func (g *Guard[L, T]) Ptr() *T {
	g.check()
	return &g.m.data
}

// Unlock releases the guard and its hardware lock.
func (g *Guard[L, T]) Unlock() {
	if !g.claim.released.CompareAndSwap(false, true) {
		panic("hwspin: unlock of released guard")
	}
	// live must be clear before the bank lets the next owner in.
	g.m.live.Store(false)
	g.claim.bank.Release(numOf[L]())
}

func (g *Guard[L, T]) check() {
	if g.claim.released.Load() {
		panic("hwspin: use of released guard")
	}
}
