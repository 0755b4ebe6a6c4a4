package entropy

import (
	"iter"
	"math"
)

// Unlimited is the count to request for an effectively endless sequence.
const Unlimited = math.MaxInt64

// Int64Sequence is a lazy sequence of exactly Remaining pseudorandom int64
// values in a fixed range.
//
// # Laziness
//
// Construction performs no generation. Each value is drawn from the
// generator of whichever goroutine advances the sequence, at the moment it
// is advanced, so a sequence is a plan for future draws rather than a
// container of values. Sequences are not restartable: a consumed value is
// gone, and two sequences built from equal arguments produce unrelated
// values.
//
// # Splitting
//
// Split halves the remaining count, allowing balanced divide-and-conquer
// consumption across goroutines. The arithmetic is exact: however many
// times the pieces are split, their Remaining counts always sum to the
// original count.
//
// A sequence instance is not safe for concurrent use. Split first, then
// hand each piece to its own goroutine; afterwards the pieces need no
// coordination because every draw is serviced by the consuming goroutine's
// own generator.
type Int64Sequence struct {
	index int64
	fence int64

	origin int64
	bound  int64
}

// Int64s returns a sequence of count draws spanning the full int64 range.
// It returns ErrNegativeCount if count is negative.
func Int64s(count int64) (*Int64Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	return &Int64Sequence{fence: count, origin: math.MaxInt64, bound: 0}, nil
}

// Int64sIn returns a sequence of count draws in [origin, bound). It
// returns ErrNegativeCount if count is negative and ErrInvalidRange unless
// origin is strictly below bound.
func Int64sIn(count, origin, bound int64) (*Int64Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if origin >= bound {
		return nil, ErrInvalidRange
	}
	return &Int64Sequence{fence: count, origin: origin, bound: bound}, nil
}

// Remaining reports exactly how many values the sequence will still
// produce.
func (s *Int64Sequence) Remaining() int64 {
	return s.fence - s.index
}

// Next produces one value, or reports false if the sequence is exhausted.
func (s *Int64Sequence) Next() (int64, bool) {
	if s.index >= s.fence {
		return 0, false
	}
	v := int64Window(currentRand(), s.origin, s.bound)
	s.index++
	return v, true
}

// Drain feeds every remaining value to fn and leaves the sequence
// exhausted. The generator is resolved once up front, making Drain the
// cheapest way to consume a long sequence on one goroutine. It panics if
// fn is nil, even when nothing remains.
func (s *Int64Sequence) Drain(fn func(int64)) {
	if fn == nil {
		panic("entropy: nil consumer")
	}
	i, f := s.index, s.fence
	if i >= f {
		return
	}
	s.index = f
	r := currentRand()
	for ; i < f; i++ {
		fn(int64Window(r, s.origin, s.bound))
	}
}

// All returns an iterator over the remaining values. Stopping early leaves
// the sequence positioned after the last yielded value.
func (s *Int64Sequence) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for s.index < s.fence {
			v := int64Window(currentRand(), s.origin, s.bound)
			s.index++
			if !yield(v) {
				return
			}
		}
	}
}

// Split carves the first half of the remaining count off into a new
// sequence and keeps the second half. It returns nil when one value or
// none remains. Splitting partitions only counts, never values: each half
// still draws lazily from whichever goroutine consumes it, so the numbers
// produced bear no relation to where the split fell.
func (s *Int64Sequence) Split() *Int64Sequence {
	i := s.index
	m := int64(uint64(i+s.fence) >> 1)
	if m <= i {
		return nil
	}
	s.index = m
	return &Int64Sequence{index: i, fence: m, origin: s.origin, bound: s.bound}
}

// Int32Sequence is the int32 counterpart of Int64Sequence, with the same
// laziness, splitting, and concurrency contract.
type Int32Sequence struct {
	index int64
	fence int64

	origin int32
	bound  int32
}

// Int32s returns a sequence of count draws spanning the full int32 range.
// It returns ErrNegativeCount if count is negative.
func Int32s(count int64) (*Int32Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	return &Int32Sequence{fence: count, origin: math.MaxInt32, bound: 0}, nil
}

// Int32sIn returns a sequence of count draws in [origin, bound). It
// returns ErrNegativeCount if count is negative and ErrInvalidRange unless
// origin is strictly below bound.
func Int32sIn(count int64, origin, bound int32) (*Int32Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if origin >= bound {
		return nil, ErrInvalidRange
	}
	return &Int32Sequence{fence: count, origin: origin, bound: bound}, nil
}

// Remaining reports exactly how many values the sequence will still
// produce.
func (s *Int32Sequence) Remaining() int64 {
	return s.fence - s.index
}

// Next produces one value, or reports false if the sequence is exhausted.
func (s *Int32Sequence) Next() (int32, bool) {
	if s.index >= s.fence {
		return 0, false
	}
	v := int32Window(currentRand(), s.origin, s.bound)
	s.index++
	return v, true
}

// Drain feeds every remaining value to fn and leaves the sequence
// exhausted. It panics if fn is nil, even when nothing remains.
func (s *Int32Sequence) Drain(fn func(int32)) {
	if fn == nil {
		panic("entropy: nil consumer")
	}
	i, f := s.index, s.fence
	if i >= f {
		return
	}
	s.index = f
	r := currentRand()
	for ; i < f; i++ {
		fn(int32Window(r, s.origin, s.bound))
	}
}

// All returns an iterator over the remaining values. Stopping early leaves
// the sequence positioned after the last yielded value.
func (s *Int32Sequence) All() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for s.index < s.fence {
			v := int32Window(currentRand(), s.origin, s.bound)
			s.index++
			if !yield(v) {
				return
			}
		}
	}
}

// Split carves the first half of the remaining count off into a new
// sequence and keeps the second half. It returns nil when one value or
// none remains.
func (s *Int32Sequence) Split() *Int32Sequence {
	i := s.index
	m := int64(uint64(i+s.fence) >> 1)
	if m <= i {
		return nil
	}
	s.index = m
	return &Int32Sequence{index: i, fence: m, origin: s.origin, bound: s.bound}
}

// Float64Sequence is the float64 counterpart of Int64Sequence, with the
// same laziness, splitting, and concurrency contract. Unbounded sequences
// from Float64s yield values in [0, 1).
type Float64Sequence struct {
	index int64
	fence int64

	origin float64
	bound  float64
}

// Float64s returns a sequence of count draws in [0, 1). It returns
// ErrNegativeCount if count is negative.
func Float64s(count int64) (*Float64Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	return &Float64Sequence{fence: count, origin: math.MaxFloat64, bound: 0}, nil
}

// Float64sIn returns a sequence of count draws in [origin, bound). It
// returns ErrNegativeCount if count is negative and ErrInvalidRange unless
// origin is strictly below bound, so NaN arguments are rejected.
func Float64sIn(count int64, origin, bound float64) (*Float64Sequence, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if !(origin < bound) {
		return nil, ErrInvalidRange
	}
	return &Float64Sequence{fence: count, origin: origin, bound: bound}, nil
}

// Remaining reports exactly how many values the sequence will still
// produce.
func (s *Float64Sequence) Remaining() int64 {
	return s.fence - s.index
}

// Next produces one value, or reports false if the sequence is exhausted.
func (s *Float64Sequence) Next() (float64, bool) {
	if s.index >= s.fence {
		return 0, false
	}
	v := float64Window(currentRand(), s.origin, s.bound)
	s.index++
	return v, true
}

// Drain feeds every remaining value to fn and leaves the sequence
// exhausted. It panics if fn is nil, even when nothing remains.
func (s *Float64Sequence) Drain(fn func(float64)) {
	if fn == nil {
		panic("entropy: nil consumer")
	}
	i, f := s.index, s.fence
	if i >= f {
		return
	}
	s.index = f
	r := currentRand()
	for ; i < f; i++ {
		fn(float64Window(r, s.origin, s.bound))
	}
}

// All returns an iterator over the remaining values. Stopping early leaves
// the sequence positioned after the last yielded value.
func (s *Float64Sequence) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for s.index < s.fence {
			v := float64Window(currentRand(), s.origin, s.bound)
			s.index++
			if !yield(v) {
				return
			}
		}
	}
}

// Split carves the first half of the remaining count off into a new
// sequence and keeps the second half. It returns nil when one value or
// none remains.
func (s *Float64Sequence) Split() *Float64Sequence {
	i := s.index
	m := int64(uint64(i+s.fence) >> 1)
	if m <= i {
		return nil
	}
	s.index = m
	return &Float64Sequence{index: i, fence: m, origin: s.origin, bound: s.bound}
}
