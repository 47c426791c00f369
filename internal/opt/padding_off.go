//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !hwspin_disable_padding && !hwspin_enable_padding

package opt

import "sync/atomic"

// Register_ is one emulated 32-bit spinlock register.
// Padding is disabled by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type Register_ struct {
	V atomic.Uint32
}
