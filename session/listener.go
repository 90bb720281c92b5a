package session

import (
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
)

// ActivePlacement describes where the active piece is and what it looks like.
type ActivePlacement struct {
	Row, Col int
	Rotation int
	Cells    [2]board.Placed
}

func placementOf(row, col, rotation int, cells [2]cell.Cell) ActivePlacement {
	return ActivePlacement{
		Row:      row,
		Col:      col,
		Rotation: rotation,
		Cells:    board.Piece(row, col, rotation, cells),
	}
}

// Listener receives piece-level and lifecycle notifications from a Session.
// Calls are synchronous, from inside Start and Update.
type Listener interface {
	// OnNextChanged reports a new preview pair.
	OnNextChanged(next [2]cell.Cell)
	// OnActiveMoved reports a spawn, shift, drop or rotation of the active piece.
	OnActiveMoved(p ActivePlacement)
	// OnStateChanged fires once per actual transition.
	OnStateChanged(from, to State)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnNextChanged([2]cell.Cell)    {}
func (NopListener) OnActiveMoved(ActivePlacement) {}
func (NopListener) OnStateChanged(State, State)   {}

// ListenerFuncs adapts optional callbacks to Listener.
type ListenerFuncs struct {
	NextChanged  func(next [2]cell.Cell)
	ActiveMoved  func(p ActivePlacement)
	StateChanged func(from, to State)
}

func (f ListenerFuncs) OnNextChanged(next [2]cell.Cell) {
	if f.NextChanged != nil {
		f.NextChanged(next)
	}
}

func (f ListenerFuncs) OnActiveMoved(p ActivePlacement) {
	if f.ActiveMoved != nil {
		f.ActiveMoved(p)
	}
}

func (f ListenerFuncs) OnStateChanged(from, to State) {
	if f.StateChanged != nil {
		f.StateChanged(from, to)
	}
}
