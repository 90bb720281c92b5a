package board

import "github.com/plus3/fallmatch/cell"

// DropDanglingCells runs one gravity pass, bottom to top, skipping the floor row.
// Each row's decisions are computed before any cell in that row moves, so one
// column's drop cannot influence a sibling's decision in the same pass.
//
// A cell stays put when it is empty, a target, resting on an occupied cell, or
// joined sideways to a partner whose cell below is occupied. Joined partners
// therefore fall together: a horizontal pair decides identically within its row,
// and the upper half of a vertical pair follows one row later in the same pass.
//
// Returns whether any cell moved.
func (b *Board) DropDanglingCells() bool {
	dropped := false

	for row := 1; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			b.dropline[col] = b.canDrop(row, col)
		}
		for col := 0; col < b.cols; col++ {
			if b.dropline[col] {
				b.Move(row, col, -1, 0)
				dropped = true
			}
		}
	}

	return dropped
}

func (b *Board) canDrop(row, col int) bool {
	c := b.Get(row, col)
	switch {
	case c.IsEmpty():
		return false
	case c.IsTarget():
		return false
	case !b.Get(row-1, col).IsEmpty():
		return false
	case c.Has(cell.JoinRight) && !b.Get(row-1, col+1).IsEmpty():
		return false
	case c.Has(cell.JoinLeft) && !b.Get(row-1, col-1).IsEmpty():
		return false
	}
	return true
}
