package striped

import (
	"sync"
	"testing"

	entropy "github.com/louisbranch/entropy.space"
)

func TestCounterSumsSequentialAdds(t *testing.T) {
	c := New(4)
	for i := int64(1); i <= 100; i++ {
		c.Add(i)
	}
	if got := c.Sum(); got != 5050 {
		t.Fatalf("Sum = %d, want 5050", got)
	}
}

func TestCounterHandlesNegativeDeltas(t *testing.T) {
	c := New(2)
	c.Add(10)
	c.Add(-3)
	c.Add(-7)
	if got := c.Sum(); got != 0 {
		t.Fatalf("Sum = %d, want 0", got)
	}
}

func TestCounterDefaultsStripeCount(t *testing.T) {
	c := New(0)
	if len(c.cells) == 0 {
		t.Fatal("expected at least one stripe")
	}
	c.Add(1)
	if got := c.Sum(); got != 1 {
		t.Fatalf("Sum = %d, want 1", got)
	}
}

func TestCounterRoundsStripesToPowerOfTwo(t *testing.T) {
	tcs := []struct {
		stripes int
		want    int
	}{
		{1, 1},
		{3, 4},
		{8, 8},
		{9, 16},
		{100000, maxStripes},
	}

	for _, tc := range tcs {
		c := New(tc.stripes)
		if len(c.cells) != tc.want {
			t.Fatalf("New(%d) stripes = %d, want %d", tc.stripes, len(c.cells), tc.want)
		}
	}
}

// TestCounterSumsConcurrentAdds ensures no increments are lost under
// concurrent writers.
func TestCounterSumsConcurrentAdds(t *testing.T) {
	const (
		goroutines = 8
		perWorker  = 10000
	)

	c := New(goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer entropy.Dispose()
			for i := 0; i < perWorker; i++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := c.Sum(); got != goroutines*perWorker {
		t.Fatalf("Sum = %d, want %d", got, goroutines*perWorker)
	}
}
