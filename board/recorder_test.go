package board_test

import "github.com/plus3/fallmatch/cell"

type eventKind int

const (
	evSet eventKind = iota
	evDelete
	evMove
)

type event struct {
	Kind       eventKind
	Row, Col   int
	DRow, DCol int
	Cell       cell.Cell
	Fancy      bool
}

// recorder is a board.Listener that keeps every notification in order.
type recorder struct {
	events []event
}

func (r *recorder) OnCellSet(row, col int, c cell.Cell) {
	r.events = append(r.events, event{Kind: evSet, Row: row, Col: col, Cell: c})
}

func (r *recorder) OnCellDelete(fancy bool, row, col int) {
	r.events = append(r.events, event{Kind: evDelete, Row: row, Col: col, Fancy: fancy})
}

func (r *recorder) OnCellMove(row, col, dRow, dCol int) {
	r.events = append(r.events, event{Kind: evMove, Row: row, Col: col, DRow: dRow, DCol: dCol})
}

func (r *recorder) count(kind eventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
