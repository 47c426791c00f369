//go:build hwspin_disable_padding

package opt

import "sync/atomic"

// Register_ is one emulated 32-bit spinlock register.
// Padding is force-disabled via the hwspin_disable_padding build tag.
// Use: go build -tags=hwspin_disable_padding
type Register_ struct {
	V atomic.Uint32
}
