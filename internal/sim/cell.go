package sim

import (
	"fmt"

	"github.com/llxisdsh/hwspin"
)

// Guard is the part of hwspin.Guard the scenarios need, with the lock
// number erased so it can be chosen at run time.
type Guard interface {
	Load() int
	Store(v int)
	Unlock()
}

// Cell is an hwspin.Mutex protecting an int, with its lock number erased.
type Cell interface {
	Lock() Guard
	TryLock() (Guard, bool)
	Num() int
	// Close unbinds the cell's lock number so the next cell on it validates.
	Close()
}

type cell[L hwspin.Number] struct {
	m *hwspin.Mutex[L, int]
}

func newCell[L hwspin.Number](bank hwspin.Bank) (Cell, error) {
	c := cell[L]{m: hwspin.New[L](0, hwspin.WithBank(bank))}
	if err := c.m.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c cell[L]) Lock() Guard {
	return c.m.Lock()
}

func (c cell[L]) TryLock() (Guard, bool) {
	g, ok := c.m.TryLock()
	if !ok {
		return nil, false
	}
	return g, true
}

func (c cell[L]) Close() {
	c.m.Close()
}

func (c cell[L]) Num() int {
	return c.m.Num()
}

var cells = [hwspin.NumSpinlocks]func(hwspin.Bank) (Cell, error){
	newCell[hwspin.Lock0],
	newCell[hwspin.Lock1],
	newCell[hwspin.Lock2],
	newCell[hwspin.Lock3],
	newCell[hwspin.Lock4],
	newCell[hwspin.Lock5],
	newCell[hwspin.Lock6],
	newCell[hwspin.Lock7],
	newCell[hwspin.Lock8],
	newCell[hwspin.Lock9],
	newCell[hwspin.Lock10],
	newCell[hwspin.Lock11],
	newCell[hwspin.Lock12],
	newCell[hwspin.Lock13],
	newCell[hwspin.Lock14],
	newCell[hwspin.Lock15],
	newCell[hwspin.Lock16],
	newCell[hwspin.Lock17],
	newCell[hwspin.Lock18],
	newCell[hwspin.Lock19],
	newCell[hwspin.Lock20],
	newCell[hwspin.Lock21],
	newCell[hwspin.Lock22],
	newCell[hwspin.Lock23],
	newCell[hwspin.Lock24],
	newCell[hwspin.Lock25],
	newCell[hwspin.Lock26],
	newCell[hwspin.Lock27],
	newCell[hwspin.Lock28],
	newCell[hwspin.Lock29],
	newCell[hwspin.Lock30],
	newCell[hwspin.Lock31],
}

// NewCell returns a counter cell on spinlock n of bank.
func NewCell(n int, bank hwspin.Bank) (Cell, error) {
	if n < 0 || n >= len(cells) {
		return nil, fmt.Errorf("%w: %d", hwspin.ErrLockNumberRange, n)
	}
	return cells[n](bank)
}
