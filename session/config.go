package session

import (
	"errors"
	"fmt"

	"github.com/plus3/fallmatch/board"
	"go.uber.org/zap"
)

const (
	DefaultReleaseDelay   = 45
	DefaultDropRate       = 40
	DefaultSettleInterval = 15
)

var (
	ErrInvalidConfig   = errors.New("session: invalid config")
	ErrTargetPlacement = errors.New("session: no legal spot left for a target")
)

// Random supplies uniformly distributed integers in [0, n).
type Random interface {
	NextBoundedInt(n int) int
}

// Config is everything a Session needs. Level values are already resolved:
// Targets and HighestRow are used as given, Level is informational.
type Config struct {
	Rows, Cols         int
	StartRow, StartCol int

	Level      int
	Targets    int
	HighestRow int

	// Timers, in ticks.
	ReleaseDelay   int
	DropRate       int
	SettleInterval int

	Random Random
	// Optional.
	Logger        *zap.Logger
	Listener      Listener
	BoardListener board.Listener
}

// DefaultConfig returns the standard 17x8 board at level 0.
func DefaultConfig(rnd Random) Config {
	cfg := Config{
		Rows:           board.DefaultRows,
		Cols:           board.DefaultCols,
		StartRow:       board.DefaultRows - 2,
		StartCol:       3,
		ReleaseDelay:   DefaultReleaseDelay,
		DropRate:       DefaultDropRate,
		SettleInterval: DefaultSettleInterval,
		Random:         rnd,
	}
	return cfg.WithLevel(0)
}

// WithLevel returns a copy of c with Level, Targets and HighestRow taken from the level table.
func (c Config) WithLevel(level int) Config {
	lv := LevelFor(level)
	c.Level = ClampLevel(level)
	c.Targets = lv.Targets
	c.HighestRow = lv.HighestRow
	return c
}

func (c *Config) validate() error {
	switch {
	case c.Random == nil:
		return fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	case c.Rows < 2 || c.Cols < 2:
		return fmt.Errorf("%w: board %dx%d too small", ErrInvalidConfig, c.Rows, c.Cols)
	case c.StartRow < 0 || c.StartRow > c.Rows-1 || c.StartCol < 0 || c.StartCol > c.Cols-2:
		return fmt.Errorf("%w: start (%d,%d) outside %dx%d board", ErrInvalidConfig, c.StartRow, c.StartCol, c.Rows, c.Cols)
	case c.HighestRow < 0 || c.HighestRow > c.Rows-2:
		return fmt.Errorf("%w: highest target row %d outside [0,%d]", ErrInvalidConfig, c.HighestRow, c.Rows-2)
	case c.Targets < 1 || c.Targets > (c.HighestRow+1)*c.Cols:
		return fmt.Errorf("%w: %d targets cannot fit below row %d", ErrInvalidConfig, c.Targets, c.HighestRow+1)
	case c.ReleaseDelay < 0 || c.DropRate < 1 || c.SettleInterval < 1:
		return fmt.Errorf("%w: timers release=%d drop=%d settle=%d", ErrInvalidConfig, c.ReleaseDelay, c.DropRate, c.SettleInterval)
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Listener == nil {
		c.Listener = NopListener{}
	}
	return nil
}
