package hwspin

// Number identifies one hardware spinlock at the type level. Each lock
// number is its own zero-size type, so guards and cells bound to different
// locks cannot be mixed up:
//
//	var counter hwspin.Mutex[hwspin.Lock7, int]
//
// The predefined Lock0 … Lock31 cover the whole bank. A user-defined tag is
// accepted as long as Num reports a value in [0, NumSpinlocks); anything
// else is rejected with ErrLockNumberRange on first use.
type Number interface {
	~struct{}
	Num() int
}

// numOf returns the lock number of tag L.
func numOf[L Number]() int {
	var l L
	return l.Num()
}

func validNum(n int) bool {
	return n >= 0 && n < NumSpinlocks
}

type (
	Lock0  struct{}
	Lock1  struct{}
	Lock2  struct{}
	Lock3  struct{}
	Lock4  struct{}
	Lock5  struct{}
	Lock6  struct{}
	Lock7  struct{}
	Lock8  struct{}
	Lock9  struct{}
	Lock10 struct{}
	Lock11 struct{}
	Lock12 struct{}
	Lock13 struct{}
	Lock14 struct{}
	Lock15 struct{}
	Lock16 struct{}
	Lock17 struct{}
	Lock18 struct{}
	Lock19 struct{}
	Lock20 struct{}
	Lock21 struct{}
	Lock22 struct{}
	Lock23 struct{}
	Lock24 struct{}
	Lock25 struct{}
	Lock26 struct{}
	Lock27 struct{}
	Lock28 struct{}
	Lock29 struct{}
	Lock30 struct{}
	// Lock31 is used by common HALs and runtimes to implement their
	// critical section. A Mutex on it contends with them.
	Lock31 struct{}
)

func (Lock0) Num() int { return 0 }
func (Lock1) Num() int { return 1 }
func (Lock2) Num() int { return 2 }
func (Lock3) Num() int { return 3 }
func (Lock4) Num() int { return 4 }
func (Lock5) Num() int { return 5 }
func (Lock6) Num() int { return 6 }
func (Lock7) Num() int { return 7 }
func (Lock8) Num() int { return 8 }
func (Lock9) Num() int { return 9 }
func (Lock10) Num() int { return 10 }
func (Lock11) Num() int { return 11 }
func (Lock12) Num() int { return 12 }
func (Lock13) Num() int { return 13 }
func (Lock14) Num() int { return 14 }
func (Lock15) Num() int { return 15 }
func (Lock16) Num() int { return 16 }
func (Lock17) Num() int { return 17 }
func (Lock18) Num() int { return 18 }
func (Lock19) Num() int { return 19 }
func (Lock20) Num() int { return 20 }
func (Lock21) Num() int { return 21 }
func (Lock22) Num() int { return 22 }
func (Lock23) Num() int { return 23 }
func (Lock24) Num() int { return 24 }
func (Lock25) Num() int { return 25 }
func (Lock26) Num() int { return 26 }
func (Lock27) Num() int { return 27 }
func (Lock28) Num() int { return 28 }
func (Lock29) Num() int { return 29 }
func (Lock30) Num() int { return 30 }
func (Lock31) Num() int { return 31 }
