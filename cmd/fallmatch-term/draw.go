package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/plus3/fallmatch/session"
)

const (
	ox = 2 // board origin, in screen cells
	oy = 1
	cw = 2 // screen columns per board cell
)

var (
	defStyle  = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	boxStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)

	typeColors = map[cell.Type]tcell.Color{
		cell.TypeA: tcell.ColorRed,
		cell.TypeB: tcell.ColorGreen,
		cell.TypeC: tcell.ColorBlue,
	}
)

// cellRunes renders c as two screen columns. Horizontal joins become '=',
// vertical joins '|' and targets '<>'.
func cellRunes(c cell.Cell) (rune, rune) {
	if c.IsEmpty() {
		return ' ', ' '
	}
	l, r := '[', ']'
	if c.IsTarget() {
		l, r = '<', '>'
	}
	if c.Has(cell.JoinTop) || c.Has(cell.JoinBottom) {
		l = '|'
	}
	if c.Has(cell.JoinLeft) {
		l = '='
	}
	if c.Has(cell.JoinRight) {
		r = '='
	}
	return l, r
}

func cellStyle(c cell.Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(typeColors[c.Type()])
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawCell(s tcell.Screen, rows, row, col int, c cell.Cell) {
	x := ox + 1 + col*cw
	y := oy + 1 + (rows - 1 - row)
	l, r := cellRunes(c)
	style := defStyle
	if !c.IsEmpty() {
		style = cellStyle(c)
	}
	s.SetContent(x, y, l, nil, style)
	s.SetContent(x+1, y, r, nil, style)
}

func drawFrame(s tcell.Screen, b *board.Board) {
	x2 := ox + b.Cols()*cw + 1
	y2 := oy + b.Rows() + 1
	for col := ox; col <= x2; col++ {
		s.SetContent(col, oy, tcell.RuneHLine, nil, boxStyle)
		s.SetContent(col, y2, tcell.RuneHLine, nil, boxStyle)
	}
	for row := oy + 1; row < y2; row++ {
		s.SetContent(ox, row, tcell.RuneVLine, nil, boxStyle)
		s.SetContent(x2, row, tcell.RuneVLine, nil, boxStyle)
	}
	s.SetContent(ox, oy, tcell.RuneULCorner, nil, boxStyle)
	s.SetContent(x2, oy, tcell.RuneURCorner, nil, boxStyle)
	s.SetContent(ox, y2, tcell.RuneLLCorner, nil, boxStyle)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, boxStyle)
}

func drawSession(s tcell.Screen, sess *session.Session, paused bool) {
	b := sess.Board()
	drawFrame(s, b)

	for pos, c := range b.All() {
		drawCell(s, b.Rows(), pos.Row, pos.Col, c)
	}
	if p, ok := sess.Active(); ok {
		for _, pc := range p.Cells {
			if b.InBounds(pc.Row, pc.Col) {
				drawCell(s, b.Rows(), pc.Row, pc.Col, pc.Cell)
			}
		}
	}

	sx := ox + b.Cols()*cw + 4
	next := sess.Next()
	drawText(s, sx, oy+1, textStyle, "next")
	drawCell(s, b.Rows(), b.Rows()-3, (sx-ox-1)/cw, next[0].With(cell.JoinRight))
	drawCell(s, b.Rows(), b.Rows()-3, (sx-ox-1)/cw+1, next[1].With(cell.JoinLeft))

	tally := sess.Tally()
	status := sess.State().String()
	if paused {
		status += " (paused)"
	}
	lines := []string{
		fmt.Sprintf("level   %-4d", sess.Level()),
		fmt.Sprintf("targets %-4d", tally.Total()),
		fmt.Sprintf("tick    %-8d", sess.Tick()),
		fmt.Sprintf("%-20s", status),
		"",
		"arrows  shift/shove",
		"z x     rotate",
		"r       restart",
		"p n     pause/step",
		"esc     quit",
	}
	for i, line := range lines {
		drawText(s, sx, oy+5+i, textStyle, line)
	}

	switch sess.State() {
	case session.DoneWon:
		drawText(s, ox+2, oy+b.Rows()/2, boxStyle, " CLEARED! ")
	case session.DoneLost:
		drawText(s, ox+2, oy+b.Rows()/2, boxStyle, " GAME OVER ")
	}
}
