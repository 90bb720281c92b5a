package board

import "github.com/plus3/fallmatch/cell"

// Listener receives fine-grained grid mutations so a presenter can mirror the
// board without knowing its internals. Calls are synchronous and happen exactly
// once per mutating Board call.
type Listener interface {
	OnCellSet(row, col int, c cell.Cell)
	OnCellDelete(fancy bool, row, col int)
	OnCellMove(row, col, dRow, dCol int)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnCellSet(int, int, cell.Cell) {}
func (NopListener) OnCellDelete(bool, int, int)   {}
func (NopListener) OnCellMove(int, int, int, int) {}

// ListenerFuncs adapts optional callbacks to Listener. nil fields are skipped.
type ListenerFuncs struct {
	Set    func(row, col int, c cell.Cell)
	Delete func(fancy bool, row, col int)
	Move   func(row, col, dRow, dCol int)
}

func (f ListenerFuncs) OnCellSet(row, col int, c cell.Cell) {
	if f.Set != nil {
		f.Set(row, col, c)
	}
}

func (f ListenerFuncs) OnCellDelete(fancy bool, row, col int) {
	if f.Delete != nil {
		f.Delete(fancy, row, col)
	}
}

func (f ListenerFuncs) OnCellMove(row, col, dRow, dCol int) {
	if f.Move != nil {
		f.Move(row, col, dRow, dCol)
	}
}
