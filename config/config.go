// Package config loads game settings from YAML.
//
// Keys missing from a file keep their Default values, so a file only needs
// to name what it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/loop"
	"github.com/plus3/fallmatch/pcg"
	"github.com/plus3/fallmatch/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Level int `yaml:"level"`
	// Seed 0 picks a time-based seed.
	Seed     uint64 `yaml:"seed"`
	Stream   uint64 `yaml:"stream"`
	LogLevel string `yaml:"log_level"`

	Board  Board  `yaml:"board"`
	Timing Timing `yaml:"timing"`
	Input  Input  `yaml:"input"`
}

type Board struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	StartRow int `yaml:"start_row"`
	StartCol int `yaml:"start_col"`
}

// Timing values other than TickRate are in ticks.
type Timing struct {
	TickRate       int `yaml:"tick_rate"`
	ReleaseDelay   int `yaml:"release_delay"`
	DropRate       int `yaml:"drop_rate"`
	SettleInterval int `yaml:"settle_interval"`
}

type Input struct {
	Shift input.Repeat `yaml:"shift"`
	Shove input.Repeat `yaml:"shove"`
}

// Default matches the stock game.
func Default() *Config {
	return &Config{
		Level:    0,
		Seed:     42,
		Stream:   54,
		LogLevel: "info",
		Board: Board{
			Rows:     board.DefaultRows,
			Cols:     board.DefaultCols,
			StartRow: board.DefaultRows - 2,
			StartCol: 3,
		},
		Timing: Timing{
			TickRate:       loop.DefaultTickRate,
			ReleaseDelay:   session.DefaultReleaseDelay,
			DropRate:       session.DefaultDropRate,
			SettleInterval: session.DefaultSettleInterval,
		},
		Input: Input{
			Shift: input.Repeat{Delay: input.ShiftDelay, Rate: input.ShiftRate},
			Shove: input.Repeat{Delay: input.ShoveDelay, Rate: input.ShoveRate},
		},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, or Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes a YAML document over Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	b := c.Board
	check(c.Level >= 0, "level %d is negative", c.Level)
	check(b.Rows >= 4, "board.rows %d is below 4", b.Rows)
	check(b.Cols >= 2, "board.cols %d is below 2", b.Cols)
	check(b.StartRow >= 0 && b.StartRow <= b.Rows-2, "board.start_row %d outside [0,%d]", b.StartRow, b.Rows-2)
	check(b.StartCol >= 0 && b.StartCol <= b.Cols-2, "board.start_col %d outside [0,%d]", b.StartCol, b.Cols-2)

	tm := c.Timing
	check(tm.TickRate > 0, "timing.tick_rate must be positive")
	check(tm.ReleaseDelay > 0, "timing.release_delay must be positive")
	check(tm.DropRate > 0, "timing.drop_rate must be positive")
	check(tm.SettleInterval > 0, "timing.settle_interval must be positive")

	check(c.Input.Shift.Delay > 0 && c.Input.Shift.Rate > 0, "input.shift delay and rate must be positive")
	check(c.Input.Shove.Delay > 0 && c.Input.Shove.Rate > 0, "input.shove delay and rate must be positive")

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	if len(errs) == 0 {
		// The level table must fit the board.
		lv := session.LevelFor(c.Level)
		check(lv.HighestRow <= b.Rows-2, "level %d places targets up to row %d; board.rows must be at least %d", c.Level, lv.HighestRow, lv.HighestRow+2)
	}

	return errors.Join(errs...)
}

// SessionConfig resolves the level table and wires the collaborators.
func (c *Config) SessionConfig(rnd session.Random, logger *zap.Logger) session.Config {
	cfg := session.Config{
		Rows:           c.Board.Rows,
		Cols:           c.Board.Cols,
		StartRow:       c.Board.StartRow,
		StartCol:       c.Board.StartCol,
		ReleaseDelay:   c.Timing.ReleaseDelay,
		DropRate:       c.Timing.DropRate,
		SettleInterval: c.Timing.SettleInterval,
		Random:         rnd,
		Logger:         logger,
	}
	return cfg.WithLevel(c.Level)
}

// RepeatTable maps the input section onto per-action cadences.
func (c *Config) RepeatTable() input.RepeatTable {
	t := input.DefaultRepeatTable()
	t[input.Left] = c.Input.Shift
	t[input.Right] = c.Input.Shift
	t[input.Shove] = c.Input.Shove
	return t
}

// TickDuration is the wall-clock length of one tick.
func (c *Config) TickDuration() time.Duration {
	return loop.TickDuration(c.Timing.TickRate)
}

// ZapLevel parses LogLevel. Validate has already rejected bad values.
func (c *Config) ZapLevel() zapcore.Level {
	lvl, _ := zapcore.ParseLevel(c.LogLevel)
	return lvl
}

// Logger builds a development logger at LogLevel. outputPaths replaces the
// default stderr sink when given.
func (c *Config) Logger(outputPaths ...string) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(c.ZapLevel())
	if len(outputPaths) > 0 {
		zc.OutputPaths = outputPaths
		zc.ErrorOutputPaths = outputPaths
	}
	return zc.Build()
}

// Source builds the random source. Seed 0 draws a seed from the clock.
func (c *Config) Source() *pcg.Source {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return pcg.NewWithStream(seed, c.Stream)
}
