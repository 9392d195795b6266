package rparallel

import "testing"

func TestArenaAllocZeroed(t *testing.T) {
	a := NewArena()
	buf := a.Alloc(128)
	if len(buf) != 128 {
		t.Fatalf("len = %d, want 128", len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}

func TestArenaResetReusesBlocks(t *testing.T) {
	a := NewArena()
	a.Alloc(1024)
	before := a.BytesAllocated()
	a.Reset()
	a.Alloc(1024)
	after := a.BytesAllocated()
	if after > before {
		t.Fatalf("reset did not reuse blocks: before=%d after=%d", before, after)
	}
}

func TestAtomicFloatAddIsLinearizable(t *testing.T) {
	var f AtomicFloat
	pool := NewPool(4)
	defer pool.Close()

	const n = 1000
	pool.ParallelFor1D(n, 8, func(i int64) {
		f.Add(1)
	})
	if got := f.Load(); got != n {
		t.Fatalf("sum = %v, want %v", got, float32(n))
	}
}

func TestBarrierReleasesAllParticipants(t *testing.T) {
	const participants = 8
	b := NewBarrier(participants)
	done := make(chan int, participants)
	for i := 0; i < participants; i++ {
		go func(id int) {
			b.Wait()
			done <- id
		}(i)
	}
	for i := 0; i < participants; i++ {
		<-done
	}
}
