package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/fallmatch/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file. Built-in defaults are used when empty.")
	sessions := flag.Int("sessions", 200, "The number of sessions to play.")
	duration := flag.Duration("duration", 30*time.Second, "Stop starting new sessions after this long.")
	seed := flag.Uint64("seed", 0, "Base seed; session i uses streams 2i and 2i+1. 0 picks one from the clock.")
	level := flag.Int("level", -1, "Level to play. Overrides the config file when set.")
	maxTicks := flag.Int("max-ticks", 100000, "Give up on a session after this many ticks.")
	workers := flag.Int("workers", runtime.NumCPU(), "Sessions played concurrently.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *level >= 0 {
		cfg.Level = *level
	}
	cfg.Seed = *seed
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	runID := uuid.New()
	baseLogger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer baseLogger.Sync()
	logger := baseLogger.With(zap.Stringer("run_id", runID))

	logger.Info("Starting soak test",
		zap.Int("sessions", *sessions),
		zap.Int("workers", *workers),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("level", cfg.Level),
	)

	report := &Report{
		RunID:    runID.String(),
		Seed:     cfg.Seed,
		Level:    cfg.Level,
		Sessions: *sessions,
		Workers:  *workers,
		MaxTicks: *maxTicks,
		Duration: *duration,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for range *workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := play(cfg, i, *maxTicks, logger.Named("session").With(zap.Int("session", i)))
				if err != nil {
					logger.Error("Session failed to start", zap.Int("session", i), zap.Error(err))
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range *sessions {
			select {
			case <-ctx.Done():
				logger.Warn("Time limit reached", zap.Int("started", i))
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	startTime := time.Now()
	for res := range results {
		report.Add(res)
		logger.Debug("Session finished",
			zap.Int("session", res.index),
			zap.Stringer("outcome", res.outcome),
			zap.Int("ticks", res.ticks),
			zap.Duration("elapsed", res.elapsed),
		)
	}
	report.TotalTime = time.Since(startTime)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("Soak test finished", zap.Int("played", report.Played))

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("Failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
