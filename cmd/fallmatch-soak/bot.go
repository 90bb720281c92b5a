package main

import (
	"time"

	"github.com/plus3/fallmatch/config"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/loop"
	"github.com/plus3/fallmatch/pcg"
	"github.com/plus3/fallmatch/session"
	"go.uber.org/zap"
)

// bot holds at most one action at a time, pressing and releasing at random
// so both single-fire and repeating actions get exercised.
type bot struct {
	rnd   *pcg.Source
	queue *input.Queue
	held  input.Action
}

func (b *bot) Update() {
	if b.held == input.Noop {
		if b.rnd.NextBoundedInt(3) == 0 {
			b.held = input.Action(1 + b.rnd.NextBoundedInt(int(input.NumActions)-1))
			b.queue.Down(b.held)
		}
		return
	}
	if b.rnd.NextBoundedInt(5) == 0 {
		b.queue.Up(b.held)
		b.held = input.Noop
	}
}

type outcome uint8

const (
	outcomeWon outcome = iota
	outcomeLost
	outcomeTimedOut
	numOutcomes
)

func (o outcome) String() string {
	switch o {
	case outcomeWon:
		return "won"
	case outcomeLost:
		return "lost"
	}
	return "timed out"
}

type result struct {
	index   int
	level   int
	outcome outcome
	ticks   int
	elapsed time.Duration
	stats   session.Stats
	tickers []loop.TickerStats
}

// play runs one bot-driven session to completion or maxTicks, one runner
// step per tick.
func play(cfg *config.Config, index, maxTicks int, logger *zap.Logger) (result, error) {
	gameRnd := pcg.NewWithStream(cfg.Seed, uint64(2*index))
	botRnd := pcg.NewWithStream(cfg.Seed, uint64(2*index+1))

	s, err := session.New(cfg.SessionConfig(gameRnd, logger))
	if err != nil {
		return result{}, err
	}
	if err := s.Start(); err != nil {
		return result{}, err
	}

	queue := input.NewQueue(cfg.RepeatTable())
	runner := loop.NewRunner(cfg.TickDuration())
	runner.Register(&bot{rnd: botRnd, queue: queue})
	runner.RegisterNamed("input", loop.TickerFunc(func() { queue.Update(s.Push) }))
	runner.Register(s)

	start := time.Now()
	for !s.State().Terminal() && s.Tick() < maxTicks {
		runner.Step()
	}

	res := result{
		index:   index,
		level:   s.Level(),
		outcome: outcomeTimedOut,
		ticks:   s.Tick(),
		elapsed: time.Since(start),
		stats:   s.Stats(),
		tickers: runner.GetStats().Tickers,
	}
	switch s.State() {
	case session.DoneWon:
		res.outcome = outcomeWon
	case session.DoneLost:
		res.outcome = outcomeLost
	}
	return res, nil
}
