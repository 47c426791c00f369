//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !hwspin_disable_padding && !hwspin_enable_padding

package opt

import (
	"sync/atomic"
	"unsafe"
)

// Register_ is one emulated 32-bit spinlock register.
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type Register_ struct {
	V atomic.Uint32
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		V atomic.Uint32
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
