package board

import (
	"fmt"

	"github.com/plus3/fallmatch/cell"
)

// Rotations of a two-cell piece around its anchor:
//
//	0: index 0 at anchor, index 1 to the right
//	1: index 0 at anchor, index 1 above
//	2: index 0 to the right, index 1 at anchor
//	3: index 0 above, index 1 at anchor
//
// Going 0 -> 1 swings index 1 from the right to the top, i.e. counter-clockwise.
const (
	RotationRight = 0
	RotationUp    = 1
	RotationLeft  = 2
	RotationDown  = 3
)

// Placed is an absolute grid position together with the cell that goes there.
type Placed struct {
	Row, Col int
	Cell     cell.Cell
}

// IsHorizontal reports whether rotation lays the piece along a row.
func IsHorizontal(rotation int) bool {
	return NormalizeRotation(rotation)%2 == 0
}

// NormalizeRotation folds any integer onto [0, 3].
func NormalizeRotation(rotation int) int {
	return ((rotation % 4) + 4) % 4
}

// AbsolutePosition places piece cell index (0 or 1) for an anchor and rotation.
// The returned cell keeps only the type bits of c plus the join flag pointing at
// its partner; any target or join bits on c are discarded.
func AbsolutePosition(row, col, rotation, index int, c cell.Cell) (int, int, cell.Cell) {
	if index != 0 && index != 1 {
		panic(fmt.Sprintf("board: piece index %d out of range", index))
	}

	var join0, join1 cell.Cell
	switch rotation {
	case RotationRight:
		col += index
		join0, join1 = cell.JoinRight, cell.JoinLeft
	case RotationUp:
		row += index
		join0, join1 = cell.JoinTop, cell.JoinBottom
	case RotationLeft:
		col += 1 - index
		join0, join1 = cell.JoinLeft, cell.JoinRight
	case RotationDown:
		row += 1 - index
		join0, join1 = cell.JoinBottom, cell.JoinTop
	default:
		panic(fmt.Sprintf("board: rotation %d out of range", rotation))
	}

	c = c.Bare()
	if index == 0 {
		c |= join0
	} else {
		c |= join1
	}
	return row, col, c
}

// Piece resolves both cells of a piece at once.
func Piece(row, col, rotation int, cells [2]cell.Cell) [2]Placed {
	var out [2]Placed
	for i, c := range cells {
		r, cc, v := AbsolutePosition(row, col, rotation, i, c)
		out[i] = Placed{Row: r, Col: cc, Cell: v}
	}
	return out
}
