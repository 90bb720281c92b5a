package board_test

import (
	"fmt"
	"testing"

	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = cell.New(cell.TypeA)
	b = cell.New(cell.TypeB)
	c = cell.New(cell.TypeC)
)

func TestNewBoard(t *testing.T) {
	bd := board.New(board.DefaultRows, board.DefaultCols)

	assert.Equal(t, 17, bd.Rows())
	assert.Equal(t, 8, bd.Cols())
	assert.Equal(t, 16, bd.TopRow())
	assert.Equal(t, bd.Rows()*bd.Cols(), bd.Count(cell.Cell.IsEmpty))

	assert.Panics(t, func() { board.New(1, 8) })
	assert.Panics(t, func() { board.New(8, 1) })
}

func TestSetGet(t *testing.T) {
	rec := &recorder{}
	bd := board.New(4, 4)
	bd.SetListener(rec)

	old := bd.Set(2, 3, a)
	assert.Equal(t, cell.Empty, old)
	assert.Equal(t, a, bd.Get(2, 3))

	old = bd.Set(2, 3, a)
	assert.Equal(t, a, old)
	assert.Len(t, rec.events, 1, "setting the same value twice notifies once")

	old = bd.Set(2, 3, b)
	assert.Equal(t, a, old)
	require.Len(t, rec.events, 2)
	assert.Equal(t, event{Kind: evSet, Row: 2, Col: 3, Cell: b}, rec.events[1])
}

func TestOutOfRangePanics(t *testing.T) {
	bd := board.New(4, 3)

	for _, p := range []board.Pos{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		t.Run(p.String(), func(t *testing.T) {
			assert.Panics(t, func() { bd.Get(p.Row, p.Col) })
			assert.Panics(t, func() { bd.Set(p.Row, p.Col, a) })
			assert.Panics(t, func() { bd.Delete(false, p.Row, p.Col) })
		})
	}

	assert.Panics(t, func() { bd.Move(0, 0, -1, 0) })
}

func TestMove(t *testing.T) {
	rec := &recorder{}
	bd := board.MustParse(`
		A> B<
		.  C
	`)
	bd.SetListener(rec)

	old := bd.Move(1, 0, -1, 0)

	assert.Equal(t, cell.Empty, old)
	assert.Equal(t, cell.Empty, bd.Get(1, 0))
	assert.Equal(t, a.With(cell.JoinRight), bd.Get(0, 0), "join flags travel with the cell")
	assert.Equal(t, []event{{Kind: evMove, Row: 1, Col: 0, DRow: -1, DCol: 0}}, rec.events)

	old = bd.Move(0, 0, 0, 1)
	assert.Equal(t, c, old, "returns the overwritten destination")
}

func TestDeleteUnjoinsPartner(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		row     int
		col     int
		partner board.Pos
		want    cell.Cell
	}{
		{
			name:    "right partner keeps target bit",
			layout:  "A> B*<\n.  .",
			row:     1,
			col:     0,
			partner: board.Pos{Row: 1, Col: 1},
			want:    cell.NewTarget(cell.TypeB),
		},
		{
			name:    "left partner",
			layout:  "C> A<\n.  .",
			row:     1,
			col:     1,
			partner: board.Pos{Row: 1, Col: 0},
			want:    c,
		},
		{
			name:    "partner above",
			layout:  "Bv .\nA^ .",
			row:     0,
			col:     0,
			partner: board.Pos{Row: 1, Col: 0},
			want:    b,
		},
		{
			name:    "partner below",
			layout:  "Bv .\nA^ .",
			row:     1,
			col:     0,
			partner: board.Pos{Row: 0, Col: 0},
			want:    a,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			bd := board.MustParse(tt.layout)
			bd.SetListener(rec)

			old := bd.Delete(true, tt.row, tt.col)

			assert.NotEqual(t, cell.Empty, old)
			assert.Equal(t, cell.Empty, bd.Get(tt.row, tt.col))
			assert.Equal(t, tt.want, bd.Get(tt.partner.Row, tt.partner.Col))

			require.Len(t, rec.events, 2)
			assert.Equal(t, evSet, rec.events[0].Kind)
			assert.Equal(t, event{Kind: evDelete, Row: tt.row, Col: tt.col, Fancy: true}, rec.events[1])
		})
	}
}

func TestDeleteEmptyIsNoop(t *testing.T) {
	rec := &recorder{}
	bd := board.New(3, 3)
	bd.SetListener(rec)

	assert.Equal(t, cell.Empty, bd.Delete(false, 1, 1))
	assert.Empty(t, rec.events)
}

func TestClearRowAndReset(t *testing.T) {
	rec := &recorder{}
	bd := board.MustParse(`
		A> B< .
		.  C  A
	`)
	bd.SetListener(rec)

	assert.Equal(t, 2, bd.ClearRow(false, 1))
	assert.Equal(t, 1, rec.count(evSet), "partner unjoin before its own deletion")
	assert.Equal(t, 2, rec.count(evDelete))

	bd.Reset()
	assert.Equal(t, 6, bd.Count(cell.Cell.IsEmpty))
}

func TestCanActiveMove(t *testing.T) {
	bd := board.MustParse(`
		. . . .
		. . . .
		. . A .
		. . . .
	`)

	tests := []struct {
		row, col, rotation int
		want               bool
	}{
		{0, 0, 0, true},
		{0, 2, 0, true},
		{0, 3, 0, false}, // second cell off the right edge
		{1, 1, 0, false}, // second cell occupied
		{1, 2, 2, false}, // anchor occupied
		{3, 0, 0, true},  // top row is fine when horizontal
		{-1, 0, 0, false},
		{0, -1, 0, false},
		{0, 3, 1, true},
		{2, 0, 1, true},
		{3, 0, 1, false}, // second cell above the top
		{0, 2, 1, false}, // second cell occupied
		{0, 4, 3, false},
		{-1, 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("row=%d,col=%d,rot=%d", tt.row, tt.col, tt.rotation), func(t *testing.T) {
			assert.Equal(t, tt.want, bd.CanActiveMove(tt.row, tt.col, tt.rotation))
		})
	}
}

func TestParseAndString(t *testing.T) {
	layout := "A* . C>\nBv . A<\nA^ . .\n"
	bd, err := board.Parse(layout)
	require.NoError(t, err)

	assert.Equal(t, 3, bd.Rows())
	assert.Equal(t, cell.NewTarget(cell.TypeA), bd.Get(2, 0))
	assert.Equal(t, a.With(cell.JoinTop), bd.Get(0, 0))
	assert.Equal(t, layout, bd.String())

	_, err = board.Parse("A B\nA")
	assert.Error(t, err)
	_, err = board.Parse("A B")
	assert.Error(t, err)
	_, err = board.Parse("A Q\nA B")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	bd := board.MustParse(`
		. B
		A .
	`)

	seen := map[board.Pos]cell.Cell{}
	for p, v := range bd.All() {
		if !v.IsEmpty() {
			seen[p] = v
		}
	}

	assert.Equal(t, map[board.Pos]cell.Cell{
		{Row: 0, Col: 0}: a,
		{Row: 1, Col: 1}: b,
	}, seen)
}
