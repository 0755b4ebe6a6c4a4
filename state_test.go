package entropy

import "testing"

// TestCurrentReturnsSameGeneratorPerGoroutine ensures repeated calls on
// one goroutine resolve to one state.
func TestCurrentReturnsSameGeneratorPerGoroutine(t *testing.T) {
	defer Dispose()

	r1 := Current()
	r1.Int64()
	if r2 := Current(); r2 != r1 {
		t.Fatal("Current resolved to a different state on the same goroutine")
	}
}

// TestCurrentIsDistinctAcrossGoroutines ensures goroutines never share
// state or seeds.
func TestCurrentIsDistinctAcrossGoroutines(t *testing.T) {
	defer Dispose()

	mine := Current()
	ch := make(chan *Rand)
	go func() {
		r := Current()
		ch <- r
		Dispose()
	}()
	other := <-ch

	if other == mine {
		t.Fatal("two goroutines resolved to the same state")
	}
	if other.seed == mine.seed {
		t.Fatal("two goroutines were handed the same seed")
	}
}

// TestDisposeDropsState ensures a goroutine starts over after Dispose.
func TestDisposeDropsState(t *testing.T) {
	defer Dispose()

	r1 := Current()
	r1.Int64()
	Dispose()

	if r2 := Current(); r2 == r1 {
		t.Fatal("Dispose left the old state in place")
	}
}

func TestNewRandSeedsAreDistinct(t *testing.T) {
	a, b := newRand(), newRand()
	if a.seed == b.seed {
		t.Fatalf("consecutive states share seed %#x", a.seed)
	}
}

func TestNewRandProbesAreNonZero(t *testing.T) {
	for i := 0; i < 256; i++ {
		if r := newRand(); r.probe == 0 {
			t.Fatalf("state %d has a zero probe", i)
		}
	}
}
