//go:build hwspin_enable_padding

package opt

import (
	"sync/atomic"
	"unsafe"
)

// Register_ is one emulated 32-bit spinlock register.
// Padding is force-enabled via the hwspin_enable_padding build tag.
// Use: go build -tags=hwspin_enable_padding
type Register_ struct {
	V atomic.Uint32
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		V atomic.Uint32
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
