package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/fallmatch/config"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/pcg"
	"github.com/plus3/fallmatch/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 17, cfg.Board.Rows)
	assert.Equal(t, 15, cfg.Board.StartRow)
	assert.Equal(t, input.DefaultRepeatTable(), cfg.RepeatTable())
	assert.Equal(t, time.Second/60, cfg.TickDuration())
	assert.Equal(t, zapcore.InfoLevel, cfg.ZapLevel())
}

func TestParsePartialDocument(t *testing.T) {
	cfg, err := config.Parse([]byte(`
level: 3
log_level: debug
timing:
  drop_rate: 20
input:
  shift: { delay: 10, rate: 4 }
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Level)
	assert.Equal(t, zapcore.DebugLevel, cfg.ZapLevel())
	assert.Equal(t, 20, cfg.Timing.DropRate)
	assert.Equal(t, session.DefaultSettleInterval, cfg.Timing.SettleInterval, "untouched keys keep defaults")
	assert.Equal(t, 8, cfg.Board.Cols)

	table := cfg.RepeatTable()
	assert.Equal(t, input.Repeat{Delay: 10, Rate: 4}, table[input.Left])
	assert.Equal(t, input.Repeat{Delay: 10, Rate: 4}, table[input.Right])
	assert.True(t, table[input.RotateCw].SingleFire())
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "unknown key",
			doc:  "lvl: 3",
			want: []string{"field lvl not found"},
		},
		{
			name: "every problem reported",
			doc: `
level: -1
log_level: loud
board: { rows: 3, cols: 1, start_row: 5, start_col: -1 }
timing: { tick_rate: 0, drop_rate: 0 }
input:
  shove: { delay: 0, rate: 2 }
`,
			want: []string{
				"level -1 is negative",
				"board.rows 3 is below 4",
				"board.cols 1 is below 2",
				"board.start_row 5 outside [0,1]",
				"board.start_col -1 outside [0,-1]",
				"timing.tick_rate must be positive",
				"timing.drop_rate must be positive",
				"input.shove delay and rate must be positive",
				"log_level:",
			},
		},
		{
			name: "level does not fit the board",
			doc:  "level: 20\nboard: { rows: 10, start_row: 8 }",
			want: []string{"level 20 places targets up to row 12; board.rows must be at least 14"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.doc))
			require.Error(t, err)
			for _, w := range tt.want {
				assert.ErrorContains(t, err, w)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: 2\nseed: 7\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Level)
	assert.Equal(t, uint64(7), cfg.Seed)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err = config.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Level)
}

func TestSessionConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Level = 4
	cfg.Timing.ReleaseDelay = 10

	sc := cfg.SessionConfig(pcg.New(1), nil)
	assert.Equal(t, session.LevelFor(4).Targets, sc.Targets)
	assert.Equal(t, session.LevelFor(4).HighestRow, sc.HighestRow)
	assert.Equal(t, 10, sc.ReleaseDelay)
	assert.Equal(t, 3, sc.StartCol)

	s, err := session.New(sc)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Equal(t, sc.Targets, s.Tally().Total())
}

func TestSource(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, pcg.NewWithStream(42, 54).Next(), cfg.Source().Next())

	cfg.Seed = 0
	assert.NotNil(t, cfg.Source())
}
