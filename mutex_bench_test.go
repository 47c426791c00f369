package hwspin

import (
	"sync"
	"testing"
)

func BenchmarkMutexLock(b *testing.B) {
	b.ReportAllocs()
	m := New[Lock25](0, WithBank(NewSimBank()))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g := m.Lock()
			*g.Ptr() += 1
			g.Unlock()
		}
	})
}

func BenchmarkMutexTryLock(b *testing.B) {
	b.ReportAllocs()
	m := New[Lock26](0, WithBank(NewSimBank()))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if g, ok := m.TryLock(); ok {
				*g.Ptr() += 1
				g.Unlock()
			}
		}
	})
}

func BenchmarkClaim(b *testing.B) {
	b.ReportAllocs()
	bank := NewSimBank()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ClaimOn[Lock27](bank).Release()
		}
	})
}

// Baseline: the same critical section under sync.Mutex.
func BenchmarkSyncMutex(b *testing.B) {
	b.ReportAllocs()
	var mu sync.Mutex
	var v int
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			mu.Lock()
			v++
			mu.Unlock()
		}
	})
}
