// Package striped provides a contention-spread counter indexed by the
// per-goroutine probe of the random engine.
package striped

import (
	"runtime"
	"sync/atomic"

	entropy "github.com/louisbranch/entropy.space"
)

const maxStripes = 256

// cell is padded out to a cache line so neighbouring stripes do not share
// one.
type cell struct {
	n atomic.Int64
	_ [56]byte
}

// Counter spreads increments across stripes so concurrent writers rarely
// touch the same word. Each goroutine picks its stripe with the engine's
// probe; a goroutine that collides with a writer on its stripe rehashes its
// probe and moves to another stripe for subsequent adds.
type Counter struct {
	cells []cell
}

// New returns a counter with the given stripe count rounded up to a power
// of two. A non-positive count defaults to GOMAXPROCS.
func New(stripes int) *Counter {
	if stripes <= 0 {
		stripes = runtime.GOMAXPROCS(0)
	}
	size := 1
	for size < stripes && size < maxStripes {
		size <<= 1
	}
	return &Counter{cells: make([]cell, size)}
}

// Add applies delta to the calling goroutine's stripe.
func (c *Counter) Add(delta int64) {
	rng := entropy.Current()
	mask := uint32(len(c.cells) - 1)
	slot := &c.cells[rng.Probe()&mask].n
	old := slot.Load()
	if slot.CompareAndSwap(old, old+delta) {
		return
	}
	// Another writer hit the same stripe: move this goroutine elsewhere
	// and land the delta unconditionally.
	rng.AdvanceProbe()
	c.cells[rng.Probe()&mask].n.Add(delta)
}

// Sum returns the point-in-time total across all stripes. Concurrent adds
// may or may not be included.
func (c *Counter) Sum() int64 {
	var total int64
	for i := range c.cells {
		total += c.cells[i].n.Load()
	}
	return total
}
