package loop_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/plus3/fallmatch/loop"
)

type countingTicker struct {
	Count int
	log   *[]string
	name  string
}

func (c *countingTicker) Update() {
	c.Count++
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
}

func TestClock(t *testing.T) {
	tick := 10 * time.Millisecond

	t.Run("near-whole tick rounds up", func(t *testing.T) {
		c := loop.NewClock(tick)
		if n := c.Advance(6 * time.Millisecond); n != 1 {
			t.Errorf("expected 1 tick, got %d", n)
		}
		if math.Abs(c.Leftover()-(-0.4)) > 1e-9 {
			t.Errorf("expected leftover -0.4, got %f", c.Leftover())
		}

		// The debt is paid back: 0.4 of a tick arrives and nothing runs.
		if n := c.Advance(4 * time.Millisecond); n != 0 {
			t.Errorf("expected 0 ticks, got %d", n)
		}
		if math.Abs(c.Leftover()) > 1e-9 {
			t.Errorf("expected leftover 0, got %f", c.Leftover())
		}
	})

	t.Run("carry fraction", func(t *testing.T) {
		c := loop.NewClock(tick)
		if n := c.Advance(23 * time.Millisecond); n != 2 {
			t.Errorf("expected 2 ticks, got %d", n)
		}
		if math.Abs(c.Leftover()-0.3) > 1e-9 {
			t.Errorf("expected leftover 0.3, got %f", c.Leftover())
		}
		if n := c.Advance(7 * time.Millisecond); n != 1 {
			t.Errorf("expected 1 tick, got %d", n)
		}
	})

	t.Run("half a tick waits", func(t *testing.T) {
		c := loop.NewClock(tick)
		if n := c.Advance(5 * time.Millisecond); n != 0 {
			t.Errorf("expected 0 ticks, got %d", n)
		}
		if n := c.Advance(5 * time.Millisecond); n != 1 {
			t.Errorf("expected 1 tick, got %d", n)
		}
	})

	t.Run("debt never yields negative ticks", func(t *testing.T) {
		c := loop.NewClock(tick)
		c.Advance(6 * time.Millisecond)
		if n := c.Advance(time.Millisecond); n != 0 {
			t.Errorf("expected 0 ticks, got %d", n)
		}
		c.Reset()
		if c.Leftover() != 0 {
			t.Errorf("expected reset leftover, got %f", c.Leftover())
		}
	})
}

func TestRunner(t *testing.T) {
	t.Run("tickers run in registration order", func(t *testing.T) {
		var order []string
		r := loop.NewRunner(10 * time.Millisecond)
		first := &countingTicker{log: &order, name: "first"}
		second := &countingTicker{log: &order, name: "second"}
		r.Register(first)
		r.Register(second)

		if n := r.Advance(25 * time.Millisecond); n != 2 {
			t.Fatalf("expected 2 ticks, got %d", n)
		}

		want := []string{"first", "second", "first", "second"}
		if fmt.Sprint(order) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, order)
		}
		if r.Ticks() != 2 {
			t.Errorf("expected 2 ticks, got %d", r.Ticks())
		}
	})

	t.Run("pause keeps time and allows stepping", func(t *testing.T) {
		r := loop.NewRunner(10 * time.Millisecond)
		c := &countingTicker{}
		r.Register(c)

		r.SetPaused(true)
		if n := r.Advance(time.Second); n != 0 {
			t.Errorf("expected no ticks while paused, got %d", n)
		}
		r.Step()
		if c.Count != 1 {
			t.Errorf("expected step to run once, got %d", c.Count)
		}

		r.SetPaused(false)
		r.Advance(10 * time.Millisecond)
		if c.Count != 2 {
			t.Errorf("expected 2 updates, got %d", c.Count)
		}
	})

	t.Run("stats", func(t *testing.T) {
		r := loop.NewRunner(time.Millisecond)
		r.Register(&countingTicker{})
		r.RegisterNamed("sleeper", loop.TickerFunc(func() { time.Sleep(time.Millisecond) }))

		stats := r.GetStats()
		if stats.Tickers[0].MinDuration != 0 {
			t.Errorf("expected zero min before any tick, got %v", stats.Tickers[0].MinDuration)
		}

		r.Advance(3 * time.Millisecond)
		stats = r.GetStats()

		if stats.TickerCount != 2 || stats.Ticks != 3 {
			t.Fatalf("unexpected totals: %+v", stats)
		}
		if stats.Tickers[0].Name != "countingTicker" {
			t.Errorf("expected type name, got %q", stats.Tickers[0].Name)
		}
		sleeper := stats.Tickers[1]
		if sleeper.Name != "sleeper" || sleeper.ExecutionCount != 3 {
			t.Errorf("unexpected sleeper stats: %+v", sleeper)
		}
		if sleeper.MinDuration < time.Millisecond || sleeper.AvgDuration < sleeper.MinDuration || sleeper.MaxDuration < sleeper.AvgDuration {
			t.Errorf("inconsistent durations: %+v", sleeper)
		}
	})

	t.Run("clock access", func(t *testing.T) {
		r := loop.NewRunner(10 * time.Millisecond)
		r.Advance(13 * time.Millisecond)
		if math.Abs(r.Leftover()-0.3) > 1e-9 {
			t.Errorf("expected leftover 0.3, got %f", r.Leftover())
		}
		r.ResetClock()
		if r.Leftover() != 0 {
			t.Errorf("expected reset leftover, got %f", r.Leftover())
		}
	})

	t.Run("pause from another goroutine", func(t *testing.T) {
		r := loop.NewRunner(time.Millisecond)
		c := &countingTicker{}
		r.Register(c)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			r.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		r.SetPaused(true)
		before := r.Ticks()
		time.Sleep(10 * time.Millisecond)
		after := r.Ticks()
		cancel()
		<-done

		if before != after {
			t.Errorf("ticks advanced while paused: %d -> %d", before, after)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		r := loop.NewRunner(time.Millisecond)
		c := &countingTicker{}
		r.Register(c)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			r.Run(ctx, time.Millisecond)
			done <- true
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("runner did not stop after context cancellation")
		}

		if c.Count == 0 {
			t.Error("expected ticker to run at least once")
		}
	})
}

func TestTickDuration(t *testing.T) {
	if d := loop.TickDuration(loop.DefaultTickRate); d != 16666666*time.Nanosecond {
		t.Errorf("unexpected tick duration %v", d)
	}
}

// ExampleRunner drives a ticker from frame times that do not line up with
// the tick length.
func ExampleRunner() {
	r := loop.NewRunner(10 * time.Millisecond)
	ticks := 0
	r.RegisterNamed("counter", loop.TickerFunc(func() { ticks++ }))

	for _, frame := range []time.Duration{7, 7, 7, 30} {
		r.Advance(frame * time.Millisecond)
	}
	fmt.Println(ticks)
	// Output: 5
}
