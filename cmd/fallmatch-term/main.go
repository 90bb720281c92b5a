package main

import (
	"context"
	"flag"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/fallmatch/config"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/loop"
	"github.com/plus3/fallmatch/pcg"
	"github.com/plus3/fallmatch/session"
	"go.uber.org/zap"
)

var keyActions = map[tcell.Key]input.Action{
	tcell.KeyLeft:  input.Left,
	tcell.KeyRight: input.Right,
	tcell.KeyDown:  input.Shove,
	tcell.KeyUp:    input.RotateCcw,
}

var runeActions = map[rune]input.Action{
	'z': input.RotateCcw,
	'x': input.RotateCw,
	' ': input.RotateCw,
}

// game is shared between the runner goroutine and the event loop; mu guards
// everything but the runner, which locks itself.
type game struct {
	mu     sync.Mutex
	cfg    *config.Config
	log    *zap.Logger
	rnd    *pcg.Source
	screen tcell.Screen
	sess   *session.Session
	queue  *input.Queue
	runner *loop.Runner
}

func (g *game) restart(level int) error {
	s, err := session.New(g.cfg.SessionConfig(g.rnd, g.log).WithLevel(level))
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	g.sess = s
	g.queue.Reset()
	g.screen.Clear()
	return nil
}

// draw must be called with mu held; paused is read beforehand because the
// runner locks itself before its tickers take mu.
func (g *game) draw(paused bool) {
	drawSession(g.screen, g.sess, paused)
	g.screen.Show()
}

// press holds and releases a in the same tick: terminals report key presses
// but not releases, so every press fires once and never repeats.
func (g *game) press(a input.Action) {
	g.queue.Down(a)
	g.queue.Up(a)
}

// handleKey returns false when the player quits.
func (g *game) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() == tcell.KeyCtrlL {
		g.screen.Sync()
		return true
	}

	if a, ok := keyActions[ev.Key()]; ok {
		g.mu.Lock()
		g.press(a)
		g.mu.Unlock()
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}

	if a, ok := runeActions[ev.Rune()]; ok {
		g.mu.Lock()
		g.press(a)
		g.mu.Unlock()
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'p':
		g.runner.SetPaused(!g.runner.Paused())
	case 'n':
		if g.runner.Paused() {
			g.runner.Step()
		}
	case 'r':
		g.mu.Lock()
		if err := g.restart(g.sess.Level()); err != nil {
			g.log.Error("restart failed", zap.Error(err))
		}
		g.mu.Unlock()
	}
	return true
}

func main() {
	configPath := flag.String("config", "", "YAML config file. Built-in defaults are used when empty.")
	level := flag.Int("level", -1, "Starting level. Overrides the config file when set.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides the config file when non-zero.")
	logPath := flag.String("log", "fallmatch-term.log", "Log file; the terminal belongs to the game.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *level >= 0 {
		cfg.Level = *level
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	logger, err := cfg.Logger(*logPath)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("%+v", err)
	}
	screen.SetStyle(defStyle)
	screen.Clear()
	defer screen.Fini()

	g := &game{
		cfg:    cfg,
		log:    logger,
		rnd:    cfg.Source(),
		screen: screen,
		queue:  input.NewQueue(cfg.RepeatTable()),
		runner: loop.NewRunner(cfg.TickDuration()),
	}
	if err := g.restart(cfg.Level); err != nil {
		screen.Fini()
		log.Fatalf("Failed to start game: %v", err)
	}

	g.runner.RegisterNamed("input", loop.TickerFunc(func() {
		g.mu.Lock()
		g.queue.Update(g.sess.Push)
		g.mu.Unlock()
	}))
	g.runner.RegisterNamed("session", loop.TickerFunc(func() {
		g.mu.Lock()
		g.sess.Update()
		g.mu.Unlock()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.runner.Run(ctx, cfg.TickDuration())

	// Redraw independently of the runner so the screen stays live while paused.
	go func() {
		ticker := time.NewTicker(cfg.TickDuration())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				paused := g.runner.Paused()
				g.mu.Lock()
				g.draw(paused)
				g.mu.Unlock()
			}
		}
	}()

	logger.Info("starting", zap.Int("level", cfg.Level), zap.Uint64("seed", cfg.Seed))

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !g.handleKey(ev) {
				stats := g.runner.GetStats()
				logger.Info("quit", zap.Int64("ticks", stats.Ticks))
				return
			}
		case nil:
			return
		}
	}
}
