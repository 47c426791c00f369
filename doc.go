// Package hwspin provides a mutex backed by the RP2040 hardware spinlocks.
//
// The SIO block of the RP2040 has 32 spinlock registers shared by both
// cores. A Mutex[L, T] owns a value of type T and hands out access to it only
// through a Guard, which exists exactly while hardware lock L is claimed:
//
//	var counter hwspin.Mutex[hwspin.Lock7, int]
//
//	// core 1
//	for range 10 {
//		counter.Do(func(v *int) { *v++ })
//	}
//
//	// core 0
//	for range 10 {
//		g := counter.Lock()
//		*g.Ptr() += 1
//		g.Unlock()
//	}
//
// The lock number is part of the type, so a Guard of Lock7 can never be
// passed where a Guard of Lock3 is expected. Spinlocks are global: every
// Mutex, Claim or foreign driver using the same number on the same bank
// contends for the same register.
//
// On targets other than rp2040 the Default bank is a SimBank that emulates
// the registers, so code using this package can be built and tested on a
// workstation.
package hwspin
