// Package workers scatters index ranges over a bounded set of goroutines.
package workers

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny inputs from being split into goroutine-sized slivers.
const minChunk = 256

// Pool runs index-range work on at most Size goroutines.
// The zero value uses runtime.NumCPU() workers.
type Pool struct {
	Size int
}

// New creates a pool with the given size. Sizes below 1 mean runtime.NumCPU().
func New(size int) *Pool {
	return &Pool{Size: size}
}

// Workers returns the effective number of goroutines the pool will use.
func (p *Pool) Workers() int {
	if p == nil || p.Size < 1 {
		return runtime.NumCPU()
	}
	return p.Size
}

// Range splits [0, n) into contiguous chunks and calls fn once per chunk.
// It returns after every chunk has completed. Chunks never overlap, so fn may
// write to its own index range of a shared slice without locking.
func (p *Pool) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := p.Workers()
	chunk := (n + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	if chunk >= n {
		fn(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start := start
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
