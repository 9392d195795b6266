// Package rparallel implements the render core's concurrency primitives: a
// persistent worker pool with chunked parallel-for (§4.B, §5), a bump-pointer
// memory arena for per-tile allocation, a CAS-based atomic float for the
// sensor's pixel accumulation, and a fixed-party barrier.
//
// The pool design is grounded directly on original_source's
// ImpactCore/src/parallel.cpp: a shared list of in-flight loops guarded by a
// mutex and condition variable, workers claiming a contiguous chunk of
// iterations at a time and releasing the lock while they execute it. Go's
// goroutines replace the C++ std::thread workers one-for-one; sync.Cond
// stands in for std::condition_variable.
package rparallel

import (
	"runtime"
	"sync"
)

// loop mirrors ParallelForLoop from parallel.cpp: a single in-flight
// parallel-for call, with workers claiming chunks of its index range until
// exhausted.
type loop struct {
	body1D func(i int64)
	body2D func(x, y int64)

	maxLoopIndex      int64
	maxInnerLoopIndex int64
	chunkSize         int64
	nextLoopIndex     int64
	activeWorkers     int

	next *loop
}

func (l *loop) isFinished() bool {
	return l.nextLoopIndex >= l.maxLoopIndex && l.activeWorkers == 0
}

// Pool is a fixed-size set of persistent worker goroutines that service
// ParallelFor1D/ParallelFor2D calls from any goroutine, including calls
// nested from within another call's own participation (the calling
// goroutine always does its share of the work rather than blocking idle,
// matching the original's "thread id 0 is reserved for the caller").
type Pool struct {
	numThreads int

	mu        sync.Mutex
	cond      *sync.Cond
	pending   *loop
	terminate bool
	wg        sync.WaitGroup
}

// NewPool starts a pool with the given number of worker goroutines. A count
// of 0 uses runtime.GOMAXPROCS(0). One slot is implicitly reserved for the
// calling goroutine of each ParallelFor* call, mirroring IMP_N_THREADS
// counting the main thread as worker 0.
func NewPool(numThreads int) *Pool {
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}
	p := &Pool{numThreads: numThreads}
	p.cond = sync.NewCond(&p.mu)
	for id := 1; id < numThreads; id++ {
		p.wg.Add(1)
		go p.workerLoop()
	}
	return p
}

// NumThreads reports the worker count this pool was created with, including
// the caller's own slot.
func (p *Pool) NumThreads() int { return p.numThreads }

// Close terminates all worker goroutines and waits for them to exit. The
// pool must not be used afterward.
func (p *Pool) Close() {
	p.mu.Lock()
	p.terminate = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) workerLoop() {
	defer p.wg.Done()
	p.mu.Lock()
	for {
		for p.pending == nil && !p.terminate {
			p.cond.Wait()
		}
		if p.terminate {
			p.mu.Unlock()
			return
		}
		l := p.pending
		if !p.claimAndRun(l) {
			// Another worker (or the caller) grabbed the last chunk first;
			// loop back around and re-check pending.
			continue
		}
	}
}

// claimAndRun claims one chunk of l under p.mu (already held on entry and on
// return), releases the lock while executing it, then reacquires. Returns
// false if there was no chunk left to claim.
func (p *Pool) claimAndRun(l *loop) bool {
	if l.nextLoopIndex >= l.maxLoopIndex {
		return false
	}
	start := l.nextLoopIndex
	end := start + l.chunkSize
	if end > l.maxLoopIndex {
		end = l.maxLoopIndex
	}
	l.nextLoopIndex = end
	if l.nextLoopIndex == l.maxLoopIndex {
		p.pending = l.next
	}
	l.activeWorkers++

	p.mu.Unlock()
	runChunk(l, start, end)
	p.mu.Lock()

	l.activeWorkers--
	if l.isFinished() {
		p.cond.Broadcast()
	}
	return true
}

func runChunk(l *loop, start, end int64) {
	if l.body1D != nil {
		for i := start; i < end; i++ {
			l.body1D(i)
		}
		return
	}
	for i := start; i < end; i++ {
		l.body2D(i%l.maxInnerLoopIndex, i/l.maxInnerLoopIndex)
	}
}

// ParallelFor1D runs body(i) for i in [0, n), split into chunks of the given
// size and distributed across the pool's workers plus the calling goroutine.
// Small ranges (fewer than chunkSize iterations, or a single-worker pool) run
// serially on the calling goroutine, matching the original's fast path.
func (p *Pool) ParallelFor1D(n int64, chunkSize int64, body func(i int64)) {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if p.numThreads == 1 || n < chunkSize {
		for i := int64(0); i < n; i++ {
			body(i)
		}
		return
	}
	p.run(&loop{body1D: body, maxLoopIndex: n, chunkSize: chunkSize})
}

// ParallelFor2D runs body(x, y) for x in [0, nx) and y in [0, ny), flattening
// the two dimensions into one claimable index range the way the original's
// parallelFor2D does (index i maps to x = i % nx, y = i / nx).
func (p *Pool) ParallelFor2D(nx, ny int64, body func(x, y int64)) {
	total := nx * ny
	if p.numThreads == 1 || total <= 1 {
		for y := int64(0); y < ny; y++ {
			for x := int64(0); x < nx; x++ {
				body(x, y)
			}
		}
		return
	}
	p.run(&loop{body2D: body, maxLoopIndex: total, maxInnerLoopIndex: nx, chunkSize: 1})
}

func (p *Pool) run(l *loop) {
	p.mu.Lock()
	l.next = p.pending
	p.pending = l
	p.cond.Broadcast()

	for !l.isFinished() {
		if !p.claimAndRun(l) {
			// No chunk left for us; wait for the remaining active workers
			// to finish this loop rather than busy-spin.
			for !l.isFinished() {
				p.cond.Wait()
			}
			break
		}
	}
	p.mu.Unlock()
}
