package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/fallmatch/board"
	"github.com/plus3/fallmatch/cell"
	"github.com/plus3/fallmatch/session"
)

const (
	cellSize     = 32
	margin       = 24
	sidebarWidth = 200
	inset        = 3
)

var (
	background = color.RGBA{24, 24, 32, 255}
	wellColor  = color.RGBA{40, 40, 52, 255}
	gridColor  = color.RGBA{52, 52, 66, 255}
	outline    = color.RGBA{245, 245, 240, 255}

	typeColors = map[cell.Type]color.RGBA{
		cell.TypeA: {230, 80, 80, 255},
		cell.TypeB: {90, 200, 110, 255},
		cell.TypeC: {80, 130, 230, 255},
	}
)

func screenSize(rows, cols int) (int, int) {
	return margin*3 + cols*cellSize + sidebarWidth, margin*2 + rows*cellSize
}

// cellOrigin is the top-left pixel of (row, col); row 0 is at the bottom.
func cellOrigin(rows, row, col int) (float32, float32) {
	return float32(margin + col*cellSize), float32(margin + (rows-1-row)*cellSize)
}

func drawWell(screen *ebiten.Image, b *board.Board) {
	w := float32(b.Cols() * cellSize)
	h := float32(b.Rows() * cellSize)
	vector.DrawFilledRect(screen, margin, margin, w, h, wellColor, false)
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			x, y := cellOrigin(b.Rows(), row, col)
			vector.StrokeRect(screen, x, y, cellSize, cellSize, 1, gridColor, false)
		}
	}
}

// drawCell draws a round body, bridged toward every joined partner, with an
// outline for targets.
func drawCell(screen *ebiten.Image, x, y float32, c cell.Cell, alpha float32) {
	if c.IsEmpty() {
		return
	}
	base := typeColors[c.Type()]
	clr := color.NRGBA{base.R, base.G, base.B, uint8(float32(base.A) * alpha)}

	const half = cellSize / 2
	cx, cy := x+half, y+half
	vector.DrawFilledCircle(screen, cx, cy, half-inset, clr, true)

	body := float32(cellSize - 2*inset)
	if c.Has(cell.JoinTop) {
		vector.DrawFilledRect(screen, x+inset, y, body, half, clr, false)
	}
	if c.Has(cell.JoinBottom) {
		vector.DrawFilledRect(screen, x+inset, cy, body, half, clr, false)
	}
	if c.Has(cell.JoinLeft) {
		vector.DrawFilledRect(screen, x, y+inset, half, body, clr, false)
	}
	if c.Has(cell.JoinRight) {
		vector.DrawFilledRect(screen, cx, y+inset, half, body, clr, false)
	}

	if c.IsTarget() {
		o := color.NRGBA{outline.R, outline.G, outline.B, uint8(float32(outline.A) * alpha)}
		vector.StrokeCircle(screen, cx, cy, half-inset-2, 2, o, true)
	}
}

func drawBoard(screen *ebiten.Image, s *session.Session, fades []fade) {
	b := s.Board()
	drawWell(screen, b)

	for pos, c := range b.All() {
		x, y := cellOrigin(b.Rows(), pos.Row, pos.Col)
		drawCell(screen, x, y, c, 1)
	}

	if p, ok := s.Active(); ok {
		for _, pc := range p.Cells {
			if !b.InBounds(pc.Row, pc.Col) {
				continue
			}
			x, y := cellOrigin(b.Rows(), pc.Row, pc.Col)
			drawCell(screen, x, y, pc.Cell, 1)
		}
	}

	for _, f := range fades {
		x, y := cellOrigin(b.Rows(), f.row, f.col)
		drawCell(screen, x, y, f.cell, f.alpha())
	}
}

func drawSidebar(screen *ebiten.Image, s *session.Session, paused bool) {
	b := s.Board()
	left := margin*2 + b.Cols()*cellSize

	ebitenutil.DebugPrintAt(screen, "NEXT", left, margin)
	next := s.Next()
	nx, ny := float32(left), float32(margin+20)
	drawCell(screen, nx, ny, next[0].With(cell.JoinRight), 1)
	drawCell(screen, nx+cellSize, ny, next[1].With(cell.JoinLeft), 1)

	tally := s.Tally()
	stats := s.Stats()
	lines := []string{
		fmt.Sprintf("LEVEL   %d", s.Level()),
		fmt.Sprintf("TARGETS %d", tally.Total()),
		fmt.Sprintf("  A %d  B %d  C %d", tally.Count(cell.TypeA), tally.Count(cell.TypeB), tally.Count(cell.TypeC)),
		fmt.Sprintf("PIECES  %d", stats.PiecesPlaced),
		fmt.Sprintf("CLEARED %d", stats.CellsCleared),
		"",
		"<- ->  shift",
		"DOWN   shove",
		"Z X    rotate",
		"R      restart",
		"P N    pause/step",
		"F1     inspector",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, left, margin+80+i*16)
	}

	switch {
	case s.State() == session.DoneWon:
		banner(screen, b, "CLEARED!  press R")
	case s.State() == session.DoneLost:
		banner(screen, b, "GAME OVER  press R")
	case paused:
		banner(screen, b, "PAUSED")
	}
}

func banner(screen *ebiten.Image, b *board.Board, text string) {
	w := float32(b.Cols() * cellSize)
	y := float32(margin + b.Rows()*cellSize/2 - 16)
	vector.DrawFilledRect(screen, margin, y, w, 32, color.RGBA{0, 0, 0, 200}, false)
	ebitenutil.DebugPrintAt(screen, text, margin+8, int(y)+8)
}
