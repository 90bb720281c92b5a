package session

import (
	"fmt"

	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/input"
	"go.uber.org/zap"
)

// Push queues an action for the next Update. Pushing an action that is already
// queued for this tick is a no-op. Unknown actions panic.
func (s *Session) Push(a input.Action) {
	if !a.Valid() {
		panic(fmt.Sprintf("session: unknown action %d", uint8(a)))
	}
	if s.pushed[a] {
		return
	}
	s.pushed[a] = true
	s.actions = append(s.actions, a)
}

func (s *Session) clearActions() {
	s.actions = s.actions[:0]
	s.pushed = [input.NumActions]bool{}
}

// updateActive applies queued actions in push order, then the drop timer, then
// settles the piece if either could not move it down.
func (s *Session) updateActive() {
	s.dropCounter++

	startRow, startCol, startRot := s.activeRow, s.activeCol, s.rotation
	shouldSettle := false

	for _, a := range s.actions {
		switch a {
		case input.Noop:
		case input.Left:
			s.shift(-1)
		case input.Right:
			s.shift(1)
		case input.RotateCcw:
			s.rotate(1)
		case input.RotateCw:
			s.rotate(-1)
		case input.Shove:
			if s.drop() {
				s.dropCounter = 0
			} else {
				shouldSettle = true
			}
		default:
			panic(fmt.Sprintf("session: unhandled action %v", a))
		}
		if shouldSettle {
			break
		}
	}

	if !shouldSettle && s.dropCounter >= s.cfg.DropRate {
		s.dropCounter = 0
		shouldSettle = !s.drop()
	}

	if shouldSettle {
		s.settlePiece()
		return
	}

	if s.activeRow != startRow || s.activeCol != startCol || s.rotation != startRot {
		s.cfg.Listener.OnActiveMoved(s.placement())
	}
}

func (s *Session) shift(dCol int) bool {
	if !s.board.CanActiveMove(s.activeRow, s.activeCol+dCol, s.rotation) {
		return false
	}
	s.activeCol += dCol
	return true
}

func (s *Session) drop() bool {
	if !s.board.CanActiveMove(s.activeRow-1, s.activeCol, s.rotation) {
		return false
	}
	s.activeRow--
	return true
}

// rotate turns the piece by amount quarter turns (positive is counter-clockwise).
// A rotation into a horizontal orientation that is blocked gets one retry a
// column to the left. Blocked rotations are dropped silently.
func (s *Session) rotate(amount int) bool {
	if s.state != Active {
		return false
	}

	rotation := board.NormalizeRotation(s.rotation + amount)
	col := s.activeCol
	if !s.board.CanActiveMove(s.activeRow, col, rotation) {
		if !board.IsHorizontal(rotation) {
			return false
		}
		col--
		if !s.board.CanActiveMove(s.activeRow, col, rotation) {
			return false
		}
	}

	s.rotation = rotation
	s.activeCol = col
	return true
}

// settlePiece writes the active cells into the grid and hands over to Settle.
// The top row is wiped afterwards; nothing may rest there.
func (s *Session) settlePiece() {
	for _, p := range board.Piece(s.activeRow, s.activeCol, s.rotation, s.active) {
		s.board.Set(p.Row, p.Col, p.Cell)
	}
	s.hasActive = false
	s.stats.PiecesPlaced++

	if n := s.board.ClearRow(false, s.board.TopRow()); n > 0 {
		s.log.Debug("top row cleared", zap.Int("cells", n), zap.Int("tick", s.tick))
	}

	s.settleCounter = 0
	s.setState(Settle)
}
