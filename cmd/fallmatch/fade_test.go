package main

import (
	"testing"

	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeTrackerMirrorsDeletedCell(t *testing.T) {
	ft := newFadeTracker(4, 3)
	b := board.New(4, 3)
	b.SetListener(ft)

	a := cell.New(cell.TypeA)
	b.Set(2, 0, a)
	b.Move(2, 0, -2, 1)
	b.Delete(false, 0, 1)
	assert.Empty(t, ft.fades, "plain deletes do not fade")

	b.Set(1, 2, cell.NewTarget(cell.TypeC))
	b.Delete(true, 1, 2)
	require.Len(t, ft.fades, 1)
	assert.Equal(t, fade{row: 1, col: 2, cell: cell.NewTarget(cell.TypeC), left: fadeDuration}, ft.fades[0])
	assert.Equal(t, make([]cell.Cell, 12), ft.mirror)
}

func TestFadeTrackerUpdate(t *testing.T) {
	ft := newFadeTracker(2, 2)
	ft.OnCellSet(0, 0, cell.New(cell.TypeB))
	ft.OnCellDelete(true, 0, 0)

	ft.Update(fadeDuration / 2)
	require.Len(t, ft.fades, 1)
	assert.InDelta(t, 0.5, ft.fades[0].alpha(), 1e-6)

	ft.Update(fadeDuration)
	assert.Empty(t, ft.fades)

	ft.OnCellDelete(true, 1, 1)
	ft.Reset()
	assert.Empty(t, ft.fades)
}
