package board

import (
	"fmt"
	"strings"

	"github.com/plus3/fallmatch/cell"
)

// Parse builds a board from whitespace-separated cell tokens (see cell.Parse).
// The first non-blank line is the top row; the last is row 0.
func Parse(text string) (*Board, error) {
	var lines [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, fields)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("board: need at least 2 rows, got %d", len(lines))
	}

	cols := len(lines[0])
	b := New(len(lines), cols)
	for i, fields := range lines {
		if len(fields) != cols {
			return nil, fmt.Errorf("board: line %d has %d cells, want %d", i+1, len(fields), cols)
		}
		row := len(lines) - 1 - i
		for col, tok := range fields {
			c, err := cell.Parse(tok)
			if err != nil {
				return nil, fmt.Errorf("board: line %d: %w", i+1, err)
			}
			b.cells[row*cols+col] = c
		}
	}
	return b, nil
}

// MustParse is Parse that panics on error, for fixtures.
func MustParse(text string) *Board {
	b, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders the board top row first in the format read by Parse.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row*b.cols+col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
