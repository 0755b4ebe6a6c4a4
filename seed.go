package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"
)

const (
	// goldenGamma is the odd 64-bit fraction of the golden ratio. Stepping a
	// seed by it forms a Weyl sequence with full 2^64 period and
	// well-dispersed increments between consecutive states.
	goldenGamma = 0x9e3779b97f4a7c15

	// seederIncrement spaces out the base seeds handed to new goroutines so
	// that their Weyl sequences start far apart.
	seederIncrement = 0xbb67ae8584caa73b

	// probeIncrement spaces out the contention probes handed to new
	// goroutines.
	probeIncrement = 0x9e3779b9
)

// seeder reserves base seeds for newly initialized goroutine generators.
var seeder atomic.Uint64

// probeSeeder reserves contention probes for newly initialized goroutine
// generators.
var probeSeeder atomic.Uint32

func init() {
	seeder.Store(baseSeed())
}

// baseSeed draws the process-wide starting seed from crypto/rand, falling
// back to the wall clock if the platform source is unavailable.
func baseSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// mix64 scrambles a seed into a 64-bit output word. The shift-xor-multiply
// rounds are the SplitMix64 finalizer (Stafford variant 13), chosen for its
// measured avalanche quality: flipping any input bit flips each output bit
// with probability close to one half.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// mix32 scrambles a seed into a 32-bit output word, keeping the upper half
// of the 64-bit avalanche where the mixing is strongest.
func mix32(z uint64) uint32 {
	return uint32(mix64(z) >> 32)
}
