package board

import "github.com/plus3/fallmatch/cell"

// CanActiveMove reports whether a two-cell piece anchored at (row, col) with the
// given rotation fits: both cells on the grid and empty. Horizontal rotations
// occupy (row, col) and (row, col+1); vertical ones (row, col) and (row+1, col).
// Used for shifts, drops, rotations and spawn checks alike.
func (b *Board) CanActiveMove(row, col, rotation int) bool {
	if IsHorizontal(rotation) {
		if row < 0 || row > b.rows-1 || col < 0 || col > b.cols-2 {
			return false
		}
		return b.Get(row, col).IsEmpty() && b.Get(row, col+1).IsEmpty()
	}

	if row < 0 || row > b.rows-2 || col < 0 || col > b.cols-1 {
		return false
	}
	return b.Get(row, col).IsEmpty() && b.Get(row+1, col).IsEmpty()
}

// CanPlaceTarget reports whether candidate may be placed at (row, col) during
// level setup. The spot must be empty and the candidate must not complete three
// of its type in any of the six local windows: two left, straddling
// left/right, two right, two below, straddling below/above, two above.
// Diagonals and longer runs are not considered.
func (b *Board) CanPlaceTarget(row, col int, candidate cell.Cell) bool {
	if !b.Get(row, col).IsEmpty() {
		return false
	}

	t := candidate.Type()
	if t == cell.None {
		return false
	}

	same := func(r, c int) bool {
		return b.InBounds(r, c) && b.cells[r*b.cols+c].Type() == t
	}

	switch {
	case same(row, col-2) && same(row, col-1),
		same(row, col-1) && same(row, col+1),
		same(row, col+1) && same(row, col+2),
		same(row-2, col) && same(row-1, col),
		same(row-1, col) && same(row+1, col),
		same(row+1, col) && same(row+2, col):
		return false
	}
	return true
}
