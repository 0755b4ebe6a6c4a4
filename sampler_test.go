package entropy

import (
	"math"
	"testing"
)

// script replays a fixed sequence of mixed words so sampling arithmetic
// can be checked draw by draw.
type script struct {
	t       *testing.T
	words64 []uint64
	words32 []uint32
}

func (s *script) word64() uint64 {
	s.t.Helper()
	if len(s.words64) == 0 {
		s.t.Fatal("drew more 64-bit words than scripted")
	}
	w := s.words64[0]
	s.words64 = s.words64[1:]
	return w
}

func (s *script) word32() uint32 {
	s.t.Helper()
	if len(s.words32) == 0 {
		s.t.Fatal("drew more 32-bit words than scripted")
	}
	w := s.words32[0]
	s.words32 = s.words32[1:]
	return w
}

// TestInt64WindowPowerOfTwoMasks ensures power-of-two widths consume one
// word and reduce to a mask.
func TestInt64WindowPowerOfTwoMasks(t *testing.T) {
	tcs := []struct {
		name   string
		word   uint64
		origin int64
		bound  int64
		want   int64
	}{
		{"low bits kept", 13, 0, 8, 5},
		{"origin shifts the window", 35, -8, 8, -5},
		{"negative word masks cleanly", math.MaxUint64, 0, 8, 7},
		{"width of exactly 2^63", 5, math.MinInt64, 0, math.MinInt64 + 5},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			src := &script{t: t, words64: []uint64{tc.word}}
			got := int64Window(src, tc.origin, tc.bound)
			if got != tc.want {
				t.Fatalf("int64Window(%#x, %d, %d) = %d, want %d", tc.word, tc.origin, tc.bound, got, tc.want)
			}
			if len(src.words64) != 0 {
				t.Fatalf("left %d words unconsumed", len(src.words64))
			}
		})
	}
}

// TestInt64WindowRejectsOverrepresentedDraws ensures the rejection loop
// redraws exactly the candidates that modulo reduction would favor.
func TestInt64WindowRejectsOverrepresentedDraws(t *testing.T) {
	// The first word shifts to u = 2^63-2, which falls in the final partial
	// block for width 6 and must be rejected. The second shifts to u = 10
	// and is accepted as 10 mod 6.
	src := &script{t: t, words64: []uint64{math.MaxUint64 - 3, 20}}
	if got := int64Window(src, 0, 6); got != 4 {
		t.Fatalf("int64Window = %d, want 4", got)
	}
	if len(src.words64) != 0 {
		t.Fatalf("left %d words unconsumed", len(src.words64))
	}
}

// TestInt64WindowAcceptsFirstDrawInRange ensures an in-range first word
// costs exactly one word.
func TestInt64WindowAcceptsFirstDrawInRange(t *testing.T) {
	src := &script{t: t, words64: []uint64{20}}
	if got := int64Window(src, 0, 6); got != 4 {
		t.Fatalf("int64Window = %d, want 4", got)
	}
	if len(src.words64) != 0 {
		t.Fatalf("left %d words unconsumed", len(src.words64))
	}
}

// TestInt64WindowFallsBackWhenWidthOverflows ensures ranges wider than the
// int64 value range accept only direct hits.
func TestInt64WindowFallsBackWhenWidthOverflows(t *testing.T) {
	tcs := []struct {
		name   string
		words  []uint64
		origin int64
		bound  int64
		want   int64
	}{
		{
			name:   "draws above and below the range are rejected",
			words:  []uint64{math.MaxInt64, math.MaxUint64 - 5, 3},
			origin: -5,
			bound:  math.MaxInt64,
			want:   3,
		},
		{
			name:   "nearly full value range",
			words:  []uint64{math.MaxInt64, 42},
			origin: math.MinInt64,
			bound:  math.MaxInt64,
			want:   42,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			src := &script{t: t, words64: tc.words}
			got := int64Window(src, tc.origin, tc.bound)
			if got != tc.want {
				t.Fatalf("int64Window = %d, want %d", got, tc.want)
			}
			if len(src.words64) != 0 {
				t.Fatalf("left %d words unconsumed", len(src.words64))
			}
		})
	}
}

// TestInt32WindowPowerOfTwoMasks mirrors the 64-bit mask cases over 32-bit
// words.
func TestInt32WindowPowerOfTwoMasks(t *testing.T) {
	tcs := []struct {
		name   string
		word   uint32
		origin int32
		bound  int32
		want   int32
	}{
		{"low bits kept", 13, 0, 8, 5},
		{"origin shifts the window", 35, -8, 8, -5},
		{"negative word masks cleanly", math.MaxUint32, 0, 8, 7},
		{"width of exactly 2^31", 5, math.MinInt32, 0, math.MinInt32 + 5},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			src := &script{t: t, words32: []uint32{tc.word}}
			got := int32Window(src, tc.origin, tc.bound)
			if got != tc.want {
				t.Fatalf("int32Window(%#x, %d, %d) = %d, want %d", tc.word, tc.origin, tc.bound, got, tc.want)
			}
			if len(src.words32) != 0 {
				t.Fatalf("left %d words unconsumed", len(src.words32))
			}
		})
	}
}

// TestInt32WindowRejectsOverrepresentedDraws ensures the 32-bit rejection
// loop redraws the final partial block for width 6.
func TestInt32WindowRejectsOverrepresentedDraws(t *testing.T) {
	src := &script{t: t, words32: []uint32{math.MaxUint32 - 3, 20}}
	if got := int32Window(src, 0, 6); got != 4 {
		t.Fatalf("int32Window = %d, want 4", got)
	}
	if len(src.words32) != 0 {
		t.Fatalf("left %d words unconsumed", len(src.words32))
	}
}

// TestInt32WindowFallsBackWhenWidthOverflows ensures ranges wider than the
// int32 value range accept only direct hits.
func TestInt32WindowFallsBackWhenWidthOverflows(t *testing.T) {
	src := &script{t: t, words32: []uint32{math.MaxInt32, math.MaxUint32 - 5, 3}}
	if got := int32Window(src, -5, math.MaxInt32); got != 3 {
		t.Fatalf("int32Window = %d, want 3", got)
	}
	if len(src.words32) != 0 {
		t.Fatalf("left %d words unconsumed", len(src.words32))
	}
}

// TestFloat64WindowScalesAndCorrects ensures scaled draws stay strictly
// below the bound, including when rounding would land exactly on it.
func TestFloat64WindowScalesAndCorrects(t *testing.T) {
	tcs := []struct {
		name   string
		word   uint64
		origin float64
		bound  float64
		want   float64
	}{
		{"midpoint scales", 1 << 63, 2, 4, 3},
		{"zero word hits the origin", 0, 2, 4, 2},
		{"rounding onto the bound is pulled back", math.MaxUint64, 1, math.Nextafter(1, 2), 1},
		{"subnormal bound", math.MaxUint64, 0, math.SmallestNonzeroFloat64, 0},
		{"sentinel range yields a unit draw", 1 << 63, math.MaxFloat64, 0, 0.5},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			src := &script{t: t, words64: []uint64{tc.word}}
			got := float64Window(src, tc.origin, tc.bound)
			if got != tc.want {
				t.Fatalf("float64Window(%#x, %v, %v) = %v, want %v", tc.word, tc.origin, tc.bound, got, tc.want)
			}
		})
	}
}

// TestFloat64WindowNeverReturnsBound drives the largest unit draw through
// assorted ranges and checks the exclusive bound holds.
func TestFloat64WindowNeverReturnsBound(t *testing.T) {
	ranges := []struct{ origin, bound float64 }{
		{0, 1e-300},
		{1, math.Nextafter(1, 2)},
		{-1, 1},
		{0, 3},
		{-8e307, 8e307},
	}

	for _, rg := range ranges {
		src := &script{t: t, words64: []uint64{math.MaxUint64}}
		got := float64Window(src, rg.origin, rg.bound)
		if got < rg.origin || got >= rg.bound {
			t.Fatalf("float64Window(max word, %v, %v) = %v, outside [origin, bound)", rg.origin, rg.bound, got)
		}
	}
}

// TestUnitFloat64Endpoints pins the smallest and largest unit draws.
func TestUnitFloat64Endpoints(t *testing.T) {
	low := &script{t: t, words64: []uint64{0}}
	if got := unitFloat64(low); got != 0 {
		t.Fatalf("unitFloat64(0) = %v, want 0", got)
	}
	high := &script{t: t, words64: []uint64{math.MaxUint64}}
	if got := unitFloat64(high); got != 1-0x1p-53 {
		t.Fatalf("unitFloat64(max word) = %v, want %v", got, 1-0x1p-53)
	}
}
