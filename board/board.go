// Package board owns the puzzle grid and every grid-level operation: storage,
// join-aware deletion, match scanning, placement legality and gravity.
//
// Row 0 is the floor and rows increase upward; columns increase left to right.
// Every accessor panics on out-of-range coordinates. Callers are expected to
// probe only in-bounds positions, so a bad coordinate is a contract violation.
package board

import (
	"fmt"
	"iter"

	"github.com/plus3/fallmatch/cell"
)

const (
	DefaultRows = 17
	DefaultCols = 8
)

// Pos is a grid coordinate.
type Pos struct {
	Row, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is a row-major grid of cells with an optional mutation listener.
type Board struct {
	rows     int
	cols     int
	cells    []cell.Cell
	listener Listener

	// scratch for DropDanglingCells
	dropline []bool
}

// New creates an empty board. rows and cols must both be at least 2.
func New(rows, cols int) *Board {
	if rows < 2 || cols < 2 {
		panic(fmt.Sprintf("board: invalid geometry %dx%d", rows, cols))
	}
	return &Board{
		rows:     rows,
		cols:     cols,
		cells:    make([]cell.Cell, rows*cols),
		listener: NopListener{},
		dropline: make([]bool, cols),
	}
}

// SetListener registers the mutation listener. nil restores the no-op listener.
func (b *Board) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	b.listener = l
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// TopRow returns the index of the highest row.
func (b *Board) TopRow() int { return b.rows - 1 }

// InBounds reports whether (row, col) lies on the grid.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("board: position (%d,%d) outside %dx%d grid", row, col, b.rows, b.cols))
	}
	return row*b.cols + col
}

// Get returns the cell at (row, col).
func (b *Board) Get(row, col int) cell.Cell {
	return b.cells[b.index(row, col)]
}

// Set stores c at (row, col) and returns the previous value.
// The listener is notified only when the value actually changes.
func (b *Board) Set(row, col int, c cell.Cell) cell.Cell {
	idx := b.index(row, col)
	old := b.cells[idx]
	if old != c {
		b.cells[idx] = c
		b.listener.OnCellSet(row, col, c)
	}
	return old
}

// Move relocates the cell at (row, col) by (dRow, dCol), leaving the source empty,
// and returns whatever occupied the destination. Join flags travel with the cell;
// callers move joined partners by the same delta (see DropDanglingCells).
// Legality is the caller's responsibility.
func (b *Board) Move(row, col, dRow, dCol int) cell.Cell {
	src := b.index(row, col)
	dst := b.index(row+dRow, col+dCol)
	if src == dst {
		return b.cells[dst]
	}

	old := b.cells[dst]
	b.cells[dst] = b.cells[src]
	b.cells[src] = cell.Empty
	b.listener.OnCellMove(row, col, dRow, dCol)
	return old
}

// Delete clears the cell at (row, col) and unjoins any partner: each partner
// loses only the opposite join flag and keeps its type and target bits.
// fancy is passed through to the listener untouched.
// Deleting an empty cell is a no-op.
func (b *Board) Delete(fancy bool, row, col int) cell.Cell {
	idx := b.index(row, col)
	old := b.cells[idx]
	if old.IsEmpty() {
		return old
	}

	for _, join := range cell.Joins {
		if !old.Has(join) {
			continue
		}
		dRow, dCol := cell.Offset(join)
		pr, pc := row+dRow, col+dCol
		b.Set(pr, pc, b.Get(pr, pc).Without(cell.Opposite(join)))
	}

	b.cells[idx] = cell.Empty
	b.listener.OnCellDelete(fancy, row, col)
	return old
}

// ClearRow deletes every occupied cell in row.
func (b *Board) ClearRow(fancy bool, row int) int {
	cleared := 0
	for col := 0; col < b.cols; col++ {
		if !b.Get(row, col).IsEmpty() {
			b.Delete(fancy, row, col)
			cleared++
		}
	}
	return cleared
}

// Reset empties the whole board through Set, so the listener sees every removal.
func (b *Board) Reset() {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			b.Set(row, col, cell.Empty)
		}
	}
}

// All iterates over every position bottom row first, left to right.
func (b *Board) All() iter.Seq2[Pos, cell.Cell] {
	return func(yield func(Pos, cell.Cell) bool) {
		for idx, c := range b.cells {
			if !yield(Pos{Row: idx / b.cols, Col: idx % b.cols}, c) {
				return
			}
		}
	}
}

// Count returns the number of cells satisfying match.
func (b *Board) Count(match func(cell.Cell) bool) int {
	n := 0
	for _, c := range b.cells {
		if match(c) {
			n++
		}
	}
	return n
}

// Snapshot copies the raw grid, row-major from row 0.
func (b *Board) Snapshot() []cell.Cell {
	out := make([]cell.Cell, len(b.cells))
	copy(out, b.cells)
	return out
}
