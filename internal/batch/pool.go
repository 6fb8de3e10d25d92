// Package batch runs many independent jobs with bounded concurrency. The
// per-host rate limiter below it enforces politeness; the pool only caps how
// many jobs are in flight at once.
package batch

import (
	"context"
	"runtime"
	"sync"
)

// OptimalConcurrency sizes the pool for I/O bound work: a multiple of the
// CPU count, capped so rendered-page fetches (roughly one browser context
// each) cannot exhaust memory.
func OptimalConcurrency() int {
	numCPU := runtime.NumCPU()
	optimal := numCPU * 3

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	availMB := (m.Sys - m.Alloc) / 1024 / 1024
	maxByMemory := int(availMB / 50)

	if optimal < numCPU {
		optimal = numCPU
	}
	if optimal > 50 {
		optimal = 50
	}
	if maxByMemory > 0 && maxByMemory < optimal {
		return maxByMemory
	}
	return optimal
}

// Result pairs one job's input key with its output or error.
type Result[T any] struct {
	Key   string
	Value T
	Err   error
}

// Pool fans a job function out over a key list with a semaphore bound.
type Pool struct {
	concurrency int
}

// New returns a Pool. If concurrency <= 0 it auto-tunes from system
// resources.
func New(concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}
	return &Pool{concurrency: concurrency}
}

// Run applies fn to every key concurrently and streams results on the
// returned channel, which is closed once all jobs finish. A cancelled
// context stops new jobs from starting; jobs already running finish and
// deliver their result.
func Run[T any](ctx context.Context, p *Pool, keys []string, fn func(ctx context.Context, key string) (T, error)) <-chan Result[T] {
	results := make(chan Result[T], len(keys))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	go func() {
		for _, key := range keys {
			select {
			case <-ctx.Done():
				wg.Wait()
				close(results)
				return
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(k string) {
				defer wg.Done()
				defer func() { <-sem }()

				value, err := fn(ctx, k)
				results <- Result[T]{Key: k, Value: value, Err: err}
			}(key)
		}

		wg.Wait()
		close(results)
	}()

	return results
}
