package hwspin

import (
	"errors"
	"sync"
	"testing"

	"github.com/llxisdsh/hwspin/internal/opt"
)

func TestClaimExclusion(t *testing.T) {
	bank := NewSimBank()
	const n = 16
	iters := 500
	if opt.Race_ {
		iters = 50
	}
	var counter int
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			for range iters {
				c := ClaimOn[Lock21](bank)
				counter++
				c.Release()
			}
		}()
	}
	wg.Wait()
	if counter != n*iters {
		t.Fatalf("counter = %d, want %d", counter, n*iters)
	}
}

func TestTryClaim(t *testing.T) {
	bank := NewSimBank()
	c, ok := TryClaimOn[Lock22](bank)
	if !ok {
		t.Fatal("TryClaimOn failed on a free lock")
	}
	if c.Num() != 22 {
		t.Fatalf("Num() = %d, want 22", c.Num())
	}
	if _, ok := TryClaimOn[Lock22](bank); ok {
		t.Fatal("TryClaimOn succeeded on a held lock")
	}
	// Other numbers are independent.
	c2, ok := TryClaimOn[Lock23](bank)
	if !ok {
		t.Fatal("TryClaimOn failed on lock 23")
	}
	c2.Release()
	c.Release()
	if _, ok := TryClaimOn[Lock22](bank); !ok {
		t.Fatal("TryClaimOn failed after release")
	}
}

func TestClaimDoubleRelease(t *testing.T) {
	bank := NewSimBank()
	c := ClaimOn[Lock24](bank)
	c.Release()
	// Someone else now holds the lock; a stale release must not free it.
	other := ClaimOn[Lock24](bank)
	mustPanic(t, c.Release)
	if bank.Status()&(1<<24) == 0 {
		t.Fatal("double release freed a lock owned by another claim")
	}
	other.Release()
}

func TestClaimRange(t *testing.T) {
	r := mustPanic(t, func() { ClaimOn[lock40](NewSimBank()) })
	if err, ok := r.(error); !ok || !errors.Is(err, ErrLockNumberRange) {
		t.Fatalf("panic = %v, want ErrLockNumberRange", r)
	}
	mustPanic(t, func() { TryClaimOn[lock40](NewSimBank()) })
}
