package opt

import (
	"testing"
	"unsafe"
)

func TestRegisterSize(t *testing.T) {
	size := unsafe.Sizeof(Register_{})
	if size < 4 {
		t.Fatalf("Register_ size=%d, want at least 4", size)
	}
	if size != 4 && size%CacheLineSize_ != 0 {
		t.Fatalf("Register_ size=%d is neither unpadded nor a multiple of %d", size, CacheLineSize_)
	}
}

func TestRegisterZeroValue(t *testing.T) {
	var regs [4]Register_
	regs[1].V.Store(1)
	for i := range regs {
		want := uint32(0)
		if i == 1 {
			want = 1
		}
		if got := regs[i].V.Load(); got != want {
			t.Fatalf("regs[%d]=%d, want %d", i, got, want)
		}
	}
}
