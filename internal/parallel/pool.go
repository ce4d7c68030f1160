// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel provides the fork-join helpers used by classification and
// software ray casting.
//
// Both workloads are data-parallel with no cross-item dependencies: each
// voxel (or each image row) is computed from read-only inputs and written to
// a disjoint slot of the output. The helpers here only split index ranges and
// wait; they never synchronize inside the loop body.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute submitted closures.
//
// Each worker owns a buffered queue; a worker whose queue is empty steals
// from the others before blocking. A pool can be shared by several
// classifiers or renderers to bound the total number of goroutines.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is read-held while enqueueing and write-held while closing done.
	mu sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			run(fn)
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case fn := <-own:
				run(fn)
			}
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			run(fn)
		default:
			return
		}
	}
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}

// ExecuteAll runs every closure on the pool and waits for all of them.
// On a closed pool the closures run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			run(fn)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		fn := fn
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			run(fn)
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// ForRange splits [start, end) into one chunk per worker and runs fn on each
// chunk through the pool, waiting for completion.
func (p *WorkerPool) ForRange(start, end int, fn func(lo, hi int)) {
	chunks := Chunks(start, end, p.workers)
	work := make([]func(), len(chunks))
	for i, c := range chunks {
		c := c
		work[i] = func() { fn(c.Lo, c.Hi) }
	}
	p.ExecuteAll(work)
}

// Close stops the pool after queued work has finished.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
