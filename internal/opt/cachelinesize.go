//go:build !hwspin_cachelinesize_32 && !hwspin_cachelinesize_64 && !hwspin_cachelinesize_128

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used to pad emulated spinlock registers so that two
// cores hammering neighbouring locks do not share a cache line.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
