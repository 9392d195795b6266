package rparallel

// Arena is a bump-pointer allocator for short-lived, per-sample
// allocations: many small, same-lifetime objects freed all at once by Reset
// (the render loop resets it after every sample). The Whitted integrator in
// this module does not allocate from it. Grounded on the renderer's memory-arena discipline (§4.B); Go's
// GC makes correctness independent of Arena, so this exists purely to avoid
// per-object heap allocation pressure in the innermost sampling loop.
type Arena struct {
	blockSize int
	current   []byte
	used      [][]byte
	available [][]byte
}

const defaultArenaBlockSize = 256 * 1024

// NewArena creates an arena that grows in blocks of at least 256KiB.
func NewArena() *Arena {
	return &Arena{blockSize: defaultArenaBlockSize}
}

// Alloc returns a zeroed byte slice of the requested size, 16-byte aligned
// within the arena's backing block.
func (a *Arena) Alloc(size int) []byte {
	const align = 16
	if size <= 0 {
		return nil
	}
	padded := (size + align - 1) &^ (align - 1)

	if len(a.current) < padded {
		blockSize := a.blockSize
		if padded > blockSize {
			blockSize = padded
		}
		// used holds whole blocks, so Reset returns them at full size.
		a.current = findOrAllocBlock(a, blockSize)
		a.used = append(a.used, a.current)
	}

	buf := a.current[:padded:padded]
	a.current = a.current[padded:]
	for i := range buf {
		buf[i] = 0
	}
	return buf[:size]
}

func findOrAllocBlock(a *Arena, size int) []byte {
	for i, block := range a.available {
		if len(block) >= size {
			a.available = append(a.available[:i], a.available[i+1:]...)
			return block
		}
	}
	return make([]byte, size)
}

// Reset releases all allocations made since the arena was created (or last
// reset) back to the available-block pool, without returning the underlying
// memory to the GC. Intended to be called once per tile/sample between
// render passes that reuse the same Arena.
func (a *Arena) Reset() {
	a.available = append(a.available, a.used...)
	a.used = a.used[:0]
	a.current = nil
}

// BytesAllocated reports the total size of blocks currently owned by the
// arena (used + available; the block being filled is one of the used ones),
// for diagnostics.
func (a *Arena) BytesAllocated() int {
	total := 0
	for _, b := range a.used {
		total += cap(b)
	}
	for _, b := range a.available {
		total += cap(b)
	}
	return total
}
