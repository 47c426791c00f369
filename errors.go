package hwspin

import "errors"

var (
	// ErrLockNumberRange is returned when a lock tag reports a number
	// outside [0, NumSpinlocks).
	ErrLockNumberRange = errors.New("hwspin: lock number out of range")

	// ErrLockNumberInUse is reported by Validate when another live Mutex,
	// not yet closed, is bound to the same lock number on the same bank and
	// the two cells were not both created with WithShared.
	ErrLockNumberInUse = errors.New("hwspin: lock number already bound to another Mutex")

	// ErrBankNotComparable is reported by Validate when the Bank cannot be
	// compared with ==, so its bindings cannot be tracked.
	ErrBankNotComparable = errors.New("hwspin: bank is not comparable")
)
