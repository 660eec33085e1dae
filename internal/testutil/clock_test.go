package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestClock_AdvancesPerCall(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	c := NewClock(start)

	first := c.Now()
	second := c.Now()

	if !first.Equal(start) {
		t.Errorf("first Now() = %v, want %v", first, start)
	}
	if got, want := second.Sub(first), time.Microsecond; got != want {
		t.Errorf("step = %v, want %v", got, want)
	}
}

func TestClock_CustomStep(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	c := NewClockWithStep(start, time.Second)

	first := c.Now()
	second := c.Now()
	if got := second.Sub(first); got != time.Second {
		t.Errorf("step = %v, want 1s", got)
	}
}

func TestClock_CurrentDoesNotAdvance(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	c := NewClock(start)

	if !c.Current().Equal(start) {
		t.Errorf("Current() = %v, want %v", c.Current(), start)
	}
	if !c.Current().Equal(start) {
		t.Error("Current() advanced the clock")
	}
}

func TestClock_ConcurrentCallsDistinct(t *testing.T) {
	c := NewClock(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC))

	const n = 100
	var wg sync.WaitGroup
	times := make([]time.Time, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			times[i] = c.Now()
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, ts := range times {
		if seen[ts.UnixNano()] {
			t.Fatal("concurrent Now() calls returned duplicate instants")
		}
		seen[ts.UnixNano()] = true
	}
}
