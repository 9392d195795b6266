package rparallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelFor1DCoversEveryIndex(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	const n = 10000
	var seen [n]int32
	pool.ParallelFor1D(n, 64, func(i int64) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelFor2DCoversEveryCell(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	const nx, ny = 37, 19
	var seen [nx * ny]int32
	pool.ParallelFor2D(nx, ny, func(x, y int64) {
		atomic.AddInt32(&seen[y*nx+x], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("cell %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelFor1DSerialFastPath(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	sum := 0
	pool.ParallelFor1D(5, 1, func(i int64) { sum += int(i) })
	if sum != 10 {
		t.Fatalf("sum = %d, want 10", sum)
	}
}

func TestParallelFor1DEmptyRange(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	called := false
	pool.ParallelFor1D(0, 16, func(i int64) { called = true })
	if called {
		t.Fatalf("body called for empty range")
	}
}
