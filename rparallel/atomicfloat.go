package rparallel

import "sync/atomic"

// AtomicFloat provides lock-free accumulation of a float32 value across the
// pool's worker goroutines, via a compare-and-swap loop over its bit
// pattern. Used by the sensor for splatting samples onto a pixel that may be
// written concurrently by adjacent tiles (§4.K).
type AtomicFloat struct {
	bits atomic.Uint32
}

func (a *AtomicFloat) Load() float32 {
	return float32FromBits(a.bits.Load())
}

func (a *AtomicFloat) Store(v float32) {
	a.bits.Store(bitsFromFloat32(v))
}

// Add atomically adds delta to the current value, retrying the CAS until it
// succeeds against a stable snapshot.
func (a *AtomicFloat) Add(delta float32) {
	for {
		old := a.bits.Load()
		newVal := bitsFromFloat32(float32FromBits(old) + delta)
		if a.bits.CompareAndSwap(old, newVal) {
			return
		}
	}
}
