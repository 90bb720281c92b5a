package main

import (
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
)

const fadeDuration = 0.35 // seconds

// fade is a cell that was cleared by a match and is still being drawn.
type fade struct {
	row, col int
	cell     cell.Cell
	left     float32
}

// alpha runs from 1 down to 0 over the fade.
func (f fade) alpha() float32 {
	return f.left / fadeDuration
}

// fadeTracker mirrors the board through its listener so a fancy delete
// knows what the cell looked like.
type fadeTracker struct {
	cols   int
	mirror []cell.Cell
	fades  []fade
}

func newFadeTracker(rows, cols int) *fadeTracker {
	return &fadeTracker{
		cols:   cols,
		mirror: make([]cell.Cell, rows*cols),
	}
}

var _ board.Listener = (*fadeTracker)(nil)

func (ft *fadeTracker) OnCellSet(row, col int, c cell.Cell) {
	ft.mirror[row*ft.cols+col] = c
}

func (ft *fadeTracker) OnCellDelete(fancy bool, row, col int) {
	idx := row*ft.cols + col
	if fancy {
		ft.fades = append(ft.fades, fade{row: row, col: col, cell: ft.mirror[idx], left: fadeDuration})
	}
	ft.mirror[idx] = cell.Empty
}

func (ft *fadeTracker) OnCellMove(row, col, dRow, dCol int) {
	src := row*ft.cols + col
	ft.mirror[(row+dRow)*ft.cols+col+dCol] = ft.mirror[src]
	ft.mirror[src] = cell.Empty
}

// Update ages every fade by dt seconds and drops finished ones.
func (ft *fadeTracker) Update(dt float32) {
	live := ft.fades[:0]
	for _, f := range ft.fades {
		f.left -= dt
		if f.left > 0 {
			live = append(live, f)
		}
	}
	ft.fades = live
}

func (ft *fadeTracker) Reset() {
	ft.fades = ft.fades[:0]
}
