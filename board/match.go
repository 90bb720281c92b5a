package board

import "github.com/plus3/fallmatch/cell"

// MatchLength is the shortest run of same-type cells that clears.
const MatchLength = 4

// Group is one maximal run of cells to clear.
type Group []Pos

// CellsToClear scans every row, then every column, for maximal runs of at least
// MatchLength cells sharing a non-empty type. Join and target bits are ignored.
// A cell that belongs to a horizontal and a vertical run appears in both groups.
// The board is not modified.
func (b *Board) CellsToClear() []Group {
	var groups []Group
	for row := 0; row < b.rows; row++ {
		groups = b.scanLine(b.cols, func(i int) Pos { return Pos{Row: row, Col: i} }, groups)
	}
	for col := 0; col < b.cols; col++ {
		groups = b.scanLine(b.rows, func(i int) Pos { return Pos{Row: i, Col: col} }, groups)
	}
	return groups
}

func (b *Board) scanLine(n int, at func(i int) Pos, groups []Group) []Group {
	runType := cell.None
	runLen := 0

	flush := func(end int) {
		if runType == cell.None || runLen < MatchLength {
			return
		}
		g := make(Group, 0, runLen)
		for i := end - runLen; i < end; i++ {
			g = append(g, at(i))
		}
		groups = append(groups, g)
	}

	for i := 0; i < n; i++ {
		p := at(i)
		t := b.cells[p.Row*b.cols+p.Col].Type()
		if t == runType {
			runLen++
			continue
		}
		flush(i)
		runType = t
		runLen = 1
	}
	// A run touching the end of the line has no type change to terminate it.
	flush(n)

	return groups
}
