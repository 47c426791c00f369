//go:build rp2040

package hwspin

import (
	"fmt"
	"sync/atomic"
)

// On the microcontroller there is a single bank, so the bank is not part of
// the key, and cells are usually package-level variables that are never
// collected: a binding ends only with Mutex.Close. bound[n] is -1 for an
// exclusive owner and the owner count for shared ones.
var bound [NumSpinlocks]atomic.Int32

type token struct {
	_ byte
}

func bind(_ Bank, n int, _ *token, shared bool) error {
	for {
		cur := bound[n].Load()
		next := int32(-1)
		switch {
		case cur == 0 && !shared:
		case cur >= 0 && shared:
			next = cur + 1
		default:
			return fmt.Errorf("%w: %d", ErrLockNumberInUse, n)
		}
		if bound[n].CompareAndSwap(cur, next) {
			return nil
		}
	}
}

func unbind(_ Bank, n int, _ *token, shared bool) {
	if !shared {
		bound[n].CompareAndSwap(-1, 0)
		return
	}
	for {
		cur := bound[n].Load()
		if cur <= 0 || bound[n].CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

func boundOwners(_ Bank, n int) int {
	cur := bound[n].Load()
	if cur < 0 {
		return 1
	}
	return int(cur)
}
