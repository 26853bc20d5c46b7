// Package parallel runs batches of independent work on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool executes submitted funcs. A pool with a single worker runs them
// inline on the caller's goroutine. Wait and Range are not meant to be
// called concurrently on the same pool.
type Pool struct {
	workers int
	work    chan func()
	wg      sync.WaitGroup // running workers
	pending sync.WaitGroup // submitted, unfinished funcs
	close   func()
}

// Start creates a pool with numWorkers goroutines; values below 1 mean
// GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)
		for range numWorkers {
			pool.wg.Go(func() {
				for f := range pool.work {
					f()
					pool.pending.Done()
				}
			})
		}
		pool.close = sync.OnceFunc(func() {
			close(pool.work)
			pool.wg.Wait()
		})
	}

	return pool
}

// Workers returns the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Do submits f. It must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.pending.Add(1)
	p.work <- f
}

// Wait blocks until every func submitted so far has returned.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Range calls f(i) for i in [0, n) across the pool and waits for all calls.
func (p *Pool) Range(n int, f func(i int)) {
	for i := range n {
		p.Do(func() { f(i) })
	}
	p.Wait()
}

// Close stops the workers. It is safe to call more than once.
func (p *Pool) Close() {
	p.close()
}
