// Package session runs one game: a board, the active piece, the preview pair
// and the target tally, advanced one tick per Update call.
//
//	Pregame -> Releasing -> Active -> Settle -> Releasing ...
//	                  \                    \
//	                   DoneLost             DoneWon
//
// A Session is single-threaded. Callers own it exclusively and drive it from
// one goroutine; listeners are called synchronously from Start and Update.
package session

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/plus3/fallmatch/input"
	"go.uber.org/zap"
)

// Stats are running totals for the current game.
type Stats struct {
	PiecesPlaced   int
	CellsCleared   int
	TargetsCleared int
	// Cascades counts settle passes that cleared at least one group.
	Cascades int
	// GravityPasses counts settle passes in which something fell.
	GravityPasses int
}

type Session struct {
	cfg   Config
	log   *zap.Logger
	board *board.Board

	state State
	tick  int

	next        [2]cell.Cell
	active      [2]cell.Cell
	hasActive   bool
	activeRow   int
	activeCol   int
	rotation    int
	dropCounter int

	releaseCounter int
	settleCounter  int

	tally TargetTally
	stats Stats

	// actions pushed for the current tick, in push order
	actions []input.Action
	pushed  [input.NumActions]bool

	// scratch for the settle pass
	cleared *intmap.Set[int]
}

// New validates cfg and builds an idle session. Call Start before Update.
func New(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := board.New(cfg.Rows, cfg.Cols)
	b.SetListener(cfg.BoardListener)

	return &Session{
		cfg:     cfg,
		log:     cfg.Logger,
		board:   b,
		actions: make([]input.Action, 0, input.NumActions),
		cleared: intmap.NewSet[int](cfg.Rows * cfg.Cols),
	}, nil
}

// Start resets the board, places the level's targets and fills the preview.
// It may be called again at any point to restart.
func (s *Session) Start() error {
	s.board.Reset()
	s.tally = TargetTally{}
	s.stats = Stats{}
	s.tick = 0
	s.hasActive = false
	s.dropCounter = 0
	s.releaseCounter = 0
	s.settleCounter = 0
	s.clearActions()
	s.setState(Pregame)

	if err := s.placeTargets(); err != nil {
		return err
	}

	s.next = [2]cell.Cell{s.randomCell(), s.randomCell()}
	s.cfg.Listener.OnNextChanged(s.next)

	s.log.Debug("session started",
		zap.Int("level", s.cfg.Level),
		zap.Int("targets", s.tally.Total()),
		zap.Int("highest_row", s.cfg.HighestRow),
	)
	return nil
}

// Update advances the simulation by exactly one tick. Actions pushed since the
// previous Update are consumed (or discarded when no piece is under control).
func (s *Session) Update() {
	switch s.state {
	case Pregame:
		s.setState(Releasing)
	case Releasing:
		s.updateReleasing()
	case Active:
		s.updateActive()
	case Settle:
		s.updateSettle()
	case DoneLost, DoneWon:
	}

	s.clearActions()
	s.tick++
}

func (s *Session) updateReleasing() {
	if s.releaseCounter == 0 {
		s.active = s.next
		s.next = [2]cell.Cell{s.randomCell(), s.randomCell()}
		s.cfg.Listener.OnNextChanged(s.next)
	}
	if s.releaseCounter < s.cfg.ReleaseDelay {
		s.releaseCounter++
		return
	}
	s.releaseCounter = 0

	s.activeRow = s.cfg.StartRow
	s.activeCol = s.cfg.StartCol
	s.rotation = board.RotationRight
	s.dropCounter = 0
	s.hasActive = true
	s.cfg.Listener.OnActiveMoved(s.placement())

	if !s.board.CanActiveMove(s.activeRow, s.activeCol, s.rotation) {
		s.log.Info("spawn blocked",
			zap.Int("row", s.activeRow),
			zap.Int("col", s.activeCol),
			zap.Int("tick", s.tick),
		)
		s.setState(DoneLost)
		return
	}
	s.setState(Active)
}

func (s *Session) setState(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to

	s.log.Debug("state transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("tick", s.tick),
	)
	switch to {
	case DoneWon:
		s.log.Info("session won", zap.Int("tick", s.tick), zap.Int("level", s.cfg.Level))
	case DoneLost:
		s.log.Info("session lost", zap.Int("tick", s.tick), zap.Int("level", s.cfg.Level))
	}

	s.cfg.Listener.OnStateChanged(from, to)
}

func (s *Session) randomCell() cell.Cell {
	return cell.New(cell.FromIndex(s.cfg.Random.NextBoundedInt(len(cell.Types))))
}

// placeTargets draws a random spot and type per target. A rejected draw tries
// the other two types, then walks forward through the eligible rows, wrapping.
func (s *Session) placeTargets() error {
	cols := s.cfg.Cols
	area := (s.cfg.HighestRow + 1) * cols

	for placed := 0; placed < s.cfg.Targets; placed++ {
		row := s.cfg.Random.NextBoundedInt(s.cfg.HighestRow + 1)
		col := s.cfg.Random.NextBoundedInt(cols)
		first := s.cfg.Random.NextBoundedInt(len(cell.Types))

		if !s.placeTargetFrom(row*cols+col, area, first) {
			return fmt.Errorf("%w: placed %d of %d at level %d", ErrTargetPlacement, placed, s.cfg.Targets, s.cfg.Level)
		}
	}
	return nil
}

func (s *Session) placeTargetFrom(start, area, firstType int) bool {
	cols := s.cfg.Cols
	for step := range area {
		idx := (start + step) % area
		row, col := idx/cols, idx%cols
		for k := range len(cell.Types) {
			t := cell.FromIndex((firstType + k) % len(cell.Types))
			candidate := cell.NewTarget(t)
			if s.board.CanPlaceTarget(row, col, candidate) {
				s.board.Set(row, col, candidate)
				s.tally.Add(t)
				return true
			}
		}
	}
	return false
}

func (s *Session) placement() ActivePlacement {
	return placementOf(s.activeRow, s.activeCol, s.rotation, s.active)
}

func (s *Session) State() State { return s.state }
func (s *Session) Tick() int { return s.tick }
func (s *Session) Level() int { return s.cfg.Level }
func (s *Session) Next() [2]cell.Cell { return s.next }
func (s *Session) Tally() TargetTally { return s.tally }
func (s *Session) Stats() Stats { return s.stats }
func (s *Session) Board() *board.Board { return s.board }
func (s *Session) Config() Config { return s.cfg }

// Active returns the active piece. ok is false while no piece is in play; a
// piece whose spawn was blocked stays visible after the loss.
func (s *Session) Active() (p ActivePlacement, ok bool) {
	if !s.hasActive {
		return ActivePlacement{}, false
	}
	return s.placement(), true
}

// Counters exposes the tick timers for inspectors.
func (s *Session) Counters() (release, drop, settle int) {
	return s.releaseCounter, s.dropCounter, s.settleCounter
}
