package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/config"
	"github.com/plus3/fallmatch/debugui"
	debugui_ebiten "github.com/plus3/fallmatch/debugui/ebiten"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/loop"
	"github.com/plus3/fallmatch/pcg"
	"github.com/plus3/fallmatch/session"
	"github.com/plus3/fallmatch/sound"
	"go.uber.org/zap"
)

var bindings = []struct {
	key    ebiten.Key
	action input.Action
}{
	{ebiten.KeyArrowLeft, input.Left},
	{ebiten.KeyArrowRight, input.Right},
	{ebiten.KeyArrowDown, input.Shove},
	{ebiten.KeyZ, input.RotateCcw},
	{ebiten.KeyX, input.RotateCw},
	{ebiten.KeySpace, input.RotateCw},
}

// Game implements ebiten.Game. Each frame feeds key edges into the action
// queue and wall time into the runner; every tick then drains the queue
// into the session before updating it.
type Game struct {
	cfg *config.Config
	log *zap.Logger
	rnd *pcg.Source

	sess   *session.Session
	queue  *input.Queue
	runner *loop.Runner

	fades *fadeTracker
	sound *sound.Player

	timer   *debugui.FrameTimer
	overlay *debugui.Overlay
	perf    *debugui.PerformanceStats
	backend *debugui_ebiten.ImguiBackend
}

func newGame(cfg *config.Config, logger *zap.Logger, player *sound.Player, backend *debugui_ebiten.ImguiBackend) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     logger,
		rnd:     cfg.Source(),
		queue:   input.NewQueue(cfg.RepeatTable()),
		runner:  loop.NewRunner(cfg.TickDuration()),
		fades:   newFadeTracker(cfg.Board.Rows, cfg.Board.Cols),
		sound:   player,
		timer:   debugui.NewFrameTimer(),
		overlay: debugui.NewOverlay(),
		backend: backend,
	}

	if err := g.restart(cfg.Level); err != nil {
		return nil, err
	}

	g.runner.RegisterNamed("input", loop.TickerFunc(func() { g.queue.Update(g.sess.Push) }))
	g.runner.RegisterNamed("session", loop.TickerFunc(func() { g.sess.Update() }))

	g.perf = debugui.NewPerformanceStats(g.runner, 120)
	g.overlay.Add(debugui.NewSessionInspector(
		func() *session.Session { return g.sess },
		g.runner,
		func(level int) {
			if err := g.restart(level); err != nil {
				g.log.Error("restart failed", zap.Int("level", level), zap.Error(err))
			}
		},
	).Render)
	g.overlay.Add(g.perf.Render)

	return g, nil
}

// restart replaces the session with a fresh one at level.
func (g *Game) restart(level int) error {
	sc := g.cfg.SessionConfig(g.rnd, g.log).WithLevel(level)
	sc.Listener = session.ListenerFuncs{StateChanged: g.sound.OnStateChanged}
	sc.BoardListener = board.ListenerFuncs{
		Set: g.fades.OnCellSet,
		Delete: func(fancy bool, row, col int) {
			g.fades.OnCellDelete(fancy, row, col)
			if fancy {
				g.sound.Raise(sound.CueClear)
			}
		},
		Move: g.fades.OnCellMove,
	}

	s, err := session.New(sc)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	g.sess = s
	g.queue.Reset()
	g.fades.Reset()
	g.runner.ResetClock()
	g.log.Info("new game", zap.Int("level", s.Level()), zap.Int("targets", s.Tally().Total()))
	return nil
}

func (g *Game) handleKeys() {
	if g.overlay.Input().WantCaptureKeyboard {
		return
	}

	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.queue.Down(b.action)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			g.queue.Up(b.action)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.restart(g.sess.Level()); err != nil {
			g.log.Error("restart failed", zap.Error(err))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.runner.SetPaused(!g.runner.Paused())
	case inpututil.IsKeyJustPressed(ebiten.KeyN) && g.runner.Paused():
		g.runner.Step()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}

	dt := g.timer.GetDeltaTime()

	g.handleKeys()
	g.runner.Advance(time.Duration(float64(dt) * float64(time.Second)))
	g.fades.Update(dt)
	g.sound.Flush()
	g.perf.Record(dt)

	g.backend.Frame(g.overlay.Render)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	drawBoard(screen, g.sess, g.fades.fades)
	drawSidebar(screen, g.sess, g.runner.Paused())

	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
