package entropy

const (
	float64Unit = 0x1p-53
	float32Unit = 0x1p-24
)

// Rand is the pseudorandom generator owned by a single goroutine. Every
// draw advances the goroutine's private seed by one step per mixed word, so
// no draw ever touches shared mutable memory.
//
// A Rand must only be used by the goroutine that obtained it from Current.
// Handing one to another goroutine does not crash, but it silently couples
// the two goroutines' draw sequences, which defeats the isolation the
// package exists to provide.
type Rand struct {
	seed  uint64
	probe uint32

	// Box-Muller produces normal values in pairs; the spare half of the
	// last pair waits here for the next Gaussian call.
	haveGaussian bool
	nextGaussian float64
}

// Current returns the calling goroutine's generator, creating and seeding
// its state on first use. Seeds are drawn from the operating system at
// process start and are not user-settable, so two runs of the same program
// observe different sequences.
func Current() *Rand {
	return currentRand()
}

// nextSeed advances the goroutine's seed by one step and returns it.
func (r *Rand) nextSeed() uint64 {
	r.seed += goldenGamma
	return r.seed
}

func (r *Rand) word64() uint64 { return mix64(r.nextSeed()) }
func (r *Rand) word32() uint32 { return mix32(r.nextSeed()) }

// Int64 returns a uniformly distributed int64. Every bit pattern is
// possible.
func (r *Rand) Int64() int64 {
	return int64(r.word64())
}

// Uint64 returns a uniformly distributed uint64.
func (r *Rand) Uint64() uint64 {
	return r.word64()
}

// Int32 returns a uniformly distributed int32. Every bit pattern is
// possible.
func (r *Rand) Int32() int32 {
	return int32(r.word32())
}

// Uint32 returns a uniformly distributed uint32.
func (r *Rand) Uint32() uint32 {
	return r.word32()
}

// Bool returns true or false with equal probability.
func (r *Rand) Bool() bool {
	return int32(r.word32()) < 0
}

// Float64 returns a uniformly distributed float64 in [0, 1), built from
// the top 53 bits of a mixed word so every result is an exact multiple of
// 2^-53.
func (r *Rand) Float64() float64 {
	return unitFloat64(r)
}

// Float32 returns a uniformly distributed float32 in [0, 1), built from
// the top 24 bits of a mixed word.
func (r *Rand) Float32() float32 {
	return float32(r.word32()>>8) * float32Unit
}

// Int64N returns a uniformly distributed int64 in [0, n). It panics if n
// is not positive.
func (r *Rand) Int64N(n int64) int64 {
	if n <= 0 {
		panic("entropy: " + ErrInvalidBound.Error())
	}
	return int64Window(r, 0, n)
}

// Int64Range returns a uniformly distributed int64 in [origin, bound). It
// panics if origin is not strictly below bound. The width of the range may
// exceed the int64 value range, for example Int64Range(math.MinInt64,
// math.MaxInt64).
func (r *Rand) Int64Range(origin, bound int64) int64 {
	if origin >= bound {
		panic("entropy: " + ErrInvalidRange.Error())
	}
	return int64Window(r, origin, bound)
}

// Int32N returns a uniformly distributed int32 in [0, n). It panics if n
// is not positive.
func (r *Rand) Int32N(n int32) int32 {
	if n <= 0 {
		panic("entropy: " + ErrInvalidBound.Error())
	}
	return int32Window(r, 0, n)
}

// Int32Range returns a uniformly distributed int32 in [origin, bound). It
// panics if origin is not strictly below bound.
func (r *Rand) Int32Range(origin, bound int32) int32 {
	if origin >= bound {
		panic("entropy: " + ErrInvalidRange.Error())
	}
	return int32Window(r, origin, bound)
}

// Float64N returns a uniformly distributed float64 in [0, n). It panics if
// n is not positive, including NaN.
func (r *Rand) Float64N(n float64) float64 {
	if !(n > 0) {
		panic("entropy: " + ErrInvalidBound.Error())
	}
	return float64Window(r, 0, n)
}

// Float64Range returns a uniformly distributed float64 in [origin, bound).
// It panics unless origin is strictly below bound, so NaN arguments are
// rejected. The result is never equal to bound, even when scaling rounds
// up to it.
func (r *Rand) Float64Range(origin, bound float64) float64 {
	if !(origin < bound) {
		panic("entropy: " + ErrInvalidRange.Error())
	}
	return float64Window(r, origin, bound)
}

// Probe returns the goroutine's contention probe, a non-zero value usable
// as a stable per-goroutine hash for striping data structures across slots.
func (r *Rand) Probe() uint32 {
	return r.probe
}

// AdvanceProbe rehashes and returns the goroutine's contention probe.
// Striped data structures call it after a collision so the goroutine moves
// to a different slot on its next attempt.
func (r *Rand) AdvanceProbe() uint32 {
	p := r.probe
	p ^= p << 13
	p ^= p >> 17
	p ^= p << 5
	r.probe = p
	return p
}
