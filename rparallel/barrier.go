package rparallel

import "sync"

// Barrier blocks a fixed number of participants until all of them have
// arrived, then releases them together. Used to synchronize worker
// goroutines between render passes that must not overlap (e.g. draining one
// tile generation's arenas before starting the next), mirroring the
// original's barrier built from a mutex and condition variable.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	count      int
	remaining  int
	generation int
}

// NewBarrier creates a barrier for the given number of participants.
func NewBarrier(count int) *Barrier {
	b := &Barrier{count: count, remaining: count}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until count participants have called Wait, then releases all
// of them. Reusable across generations: the last arriver resets the
// remaining count and bumps the generation before broadcasting.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.remaining--
	if b.remaining == 0 {
		b.remaining = b.count
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
