package entropy

import (
	"sync"

	"github.com/petermattis/goid"
)

// states maps goroutine ids to their generator. An entry is created the
// first time a goroutine draws a value and removed only by Dispose. The map
// is only ever written under a key owned by the calling goroutine, so
// steady-state draws reduce to a single lock-free read.
var states sync.Map

// currentRand returns the calling goroutine's generator, creating and
// seeding it on first use.
func currentRand() *Rand {
	id := goid.Get()
	if v, ok := states.Load(id); ok {
		return v.(*Rand)
	}
	r := newRand()
	states.Store(id, r)
	return r
}

// newRand seeds a fresh generator. Base seeds come from the global seeder
// so that concurrently started goroutines begin on distant points of the
// seed cycle, and probes are forced non-zero so a zero probe can mean
// "uninitialized" to striped data structures.
func newRand() *Rand {
	probe := probeSeeder.Add(probeIncrement)
	if probe == 0 {
		probe = 1
	}
	return &Rand{
		seed:  mix64(seeder.Add(seederIncrement)),
		probe: probe,
	}
}

// Dispose drops the generator state held for the calling goroutine.
// Long-lived programs that spawn many short-lived worker goroutines should
// call it before each worker returns; the next Current call on a goroutine
// with the same id starts over with a fresh seed. Any Gaussian value
// buffered for the goroutine is discarded with the state.
func Dispose() {
	states.Delete(goid.Get())
}
