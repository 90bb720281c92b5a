// Package loop drives tick-based simulations from wall-clock time.
//
// A Runner owns a Clock and an ordered list of Tickers. Every tick runs each
// Ticker once, in registration order, and records how long it took.
package loop

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Ticker is advanced by exactly one tick per Update call.
type Ticker interface {
	Update()
}

// TickerFunc adapts a plain function to Ticker.
type TickerFunc func()

func (f TickerFunc) Update() { f() }

// Stats provides statistics about runner execution.
type Stats struct {
	TickerCount int
	Ticks       int64
	Tickers     []TickerStats
}

// TickerStats provides execution statistics for a single ticker.
type TickerStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type tickerStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Runner executes registered tickers a whole number of ticks at a time.
// Its methods may be called from any goroutine. Tickers run with the runner
// locked and must not call back into it.
type Runner struct {
	mu      sync.Mutex
	clock   *Clock
	tickers []Ticker
	stats   []*tickerStatsInternal
	ticks   int64
	paused  bool
}

// NewRunner creates a runner whose ticks last tickDuration.
func NewRunner(tickDuration time.Duration) *Runner {
	return &Runner{
		clock:   NewClock(tickDuration),
		tickers: make([]Ticker, 0),
	}
}

// Register appends t, named after its type. Register tickers before the
// first tick.
func (r *Runner) Register(t Ticker) {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	r.RegisterNamed(typ.Name(), t)
}

// RegisterNamed appends t under an explicit name, for closures and adapters.
func (r *Runner) RegisterNamed(name string, t Ticker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickers = append(r.tickers, t)
	r.stats = append(r.stats, &tickerStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Step runs exactly one tick, paused or not.
func (r *Runner) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step()
}

func (r *Runner) step() {
	for i, t := range r.tickers {
		start := time.Now()
		t.Update()
		duration := time.Since(start)

		stats := r.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
	r.ticks++
}

// Advance converts elapsed wall time into ticks and runs them.
// While paused no time is consumed and no tick runs.
func (r *Runner) Advance(elapsed time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return 0
	}
	n := r.clock.Advance(elapsed)
	for range n {
		r.step()
	}
	return n
}

// Run advances the runner at the given interval until the context is cancelled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(lastTime)
			lastTime = now
			r.Advance(elapsed)
		}
	}
}

// SetPaused stops or resumes Advance.
func (r *Runner) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Ticks is the number of ticks run so far.
func (r *Runner) Ticks() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

// Leftover is the fraction of a tick carried by the clock.
func (r *Runner) Leftover() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock.Leftover()
}

// ResetClock drops any carried fraction of a tick.
func (r *Runner) ResetClock() {
	r.mu.Lock()
	r.clock.Reset()
	r.mu.Unlock()
}

// GetStats returns statistics about ticker execution.
func (r *Runner) GetStats() *Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &Stats{
		TickerCount: len(r.tickers),
		Ticks:       r.ticks,
		Tickers:     make([]TickerStats, len(r.stats)),
	}

	for i, internal := range r.stats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Tickers[i] = TickerStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
