//go:build !rp2040

package hwspin

import (
	"fmt"
	"reflect"
	"runtime"
	"weak"

	"github.com/llxisdsh/pb"
)

// Process-wide record of which Mutex cells are bound to which
// (bank, lock number). A cell leaves it through Mutex.Close; owners are
// also referenced weakly, so a cell that is collected without Close frees
// its number at the next GC.
var bindings pb.MapOf[bindingKey, *binding]

// bindingKey holds the Bank as an interface value, so only banks whose
// dynamic value is comparable may be used as a key.
type bindingKey struct {
	bank Bank
	n    int
}

type binding struct {
	owners []weak.Pointer[token]
	shared bool
}

// token identifies one Mutex in the registry. It must not be zero-sized:
// weak pointers to distinct zero-size objects may compare equal.
type token struct {
	_ byte
}

// keep returns the owners of b that are still alive and are not drop.
func (b *binding) keep(drop weak.Pointer[token]) []weak.Pointer[token] {
	var live []weak.Pointer[token]
	for _, o := range b.owners {
		if o != drop && o.Value() != nil {
			live = append(live, o)
		}
	}
	return live
}

func (b *binding) live() []weak.Pointer[token] {
	return b.keep(weak.Pointer[token]{})
}

func keyOf(bank Bank, n int) (bindingKey, error) {
	if !reflect.ValueOf(bank).Comparable() {
		return bindingKey{}, fmt.Errorf("%w: %T", ErrBankNotComparable, bank)
	}
	return bindingKey{bank: bank, n: n}, nil
}

// bind records tok as an owner of lock n on bank. It fails if another live
// owner exists, unless both sides asked for sharing.
func bind(bank Bank, n int, tok *token, shared bool) error {
	key, err := keyOf(bank, n)
	if err != nil {
		return err
	}
	_, _ = bindings.ProcessEntry(
		key,
		func(e *pb.EntryOf[bindingKey, *binding]) (*pb.EntryOf[bindingKey, *binding], *binding, bool) {
			var live []weak.Pointer[token]
			if e != nil {
				live = e.Value.live()
				if len(live) > 0 && !(shared && e.Value.shared) {
					err = fmt.Errorf("%w: %d", ErrLockNumberInUse, n)
					return e, e.Value, true
				}
			}
			b := &binding{
				owners: append(live, weak.Make(tok)),
				shared: shared,
			}
			return &pb.EntryOf[bindingKey, *binding]{Value: b}, b, e != nil
		},
	)
	if err == nil {
		runtime.AddCleanup(tok, prune, key)
	}
	return err
}

// unbind removes tok from the owners of lock n on bank.
func unbind(bank Bank, n int, tok *token, _ bool) {
	key, err := keyOf(bank, n)
	if err != nil {
		return
	}
	update(key, weak.Make(tok))
}

// prune drops owners that were collected, and the entry once none is left,
// so the registry does not keep dead banks reachable.
func prune(key bindingKey) {
	update(key, weak.Pointer[token]{})
}

func update(key bindingKey, drop weak.Pointer[token]) {
	_, _ = bindings.ProcessEntry(
		key,
		func(e *pb.EntryOf[bindingKey, *binding]) (*pb.EntryOf[bindingKey, *binding], *binding, bool) {
			if e == nil {
				return nil, nil, false
			}
			live := e.Value.keep(drop)
			if len(live) == 0 {
				return nil, nil, true
			}
			if len(live) == len(e.Value.owners) {
				return e, e.Value, false
			}
			b := &binding{owners: live, shared: e.Value.shared}
			return &pb.EntryOf[bindingKey, *binding]{Value: b}, b, false
		},
	)
}

// boundOwners reports how many live cells are bound to lock n on bank.
func boundOwners(bank Bank, n int) int {
	key, err := keyOf(bank, n)
	if err != nil {
		return 0
	}
	b, ok := bindings.Load(key)
	if !ok {
		return 0
	}
	return len(b.live())
}
