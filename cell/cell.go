// Package cell defines the packed bit-flag value stored in every board position.
//
// Layout (low to high bits):
//
//	0-2  type (TypeA = 1, TypeB = 2, TypeC = 3; both low bits set, not a third bit)
//	3    target
//	4    joined top
//	5    joined right
//	6    joined bottom
//	7    joined left
//
// The zero value is the canonical empty cell.
package cell

import (
	"fmt"
	"strings"
)

// Cell is a single board position encoded as bit flags.
type Cell uint8

// Type is the masked color/type portion of a Cell.
type Type uint8

const (
	TypeMask Cell = 0b0000_0111
	Target   Cell = 0b0000_1000

	JoinTop    Cell = 0b0001_0000
	JoinRight  Cell = 0b0010_0000
	JoinBottom Cell = 0b0100_0000
	JoinLeft   Cell = 0b1000_0000

	JoinMask = JoinTop | JoinRight | JoinBottom | JoinLeft

	Empty Cell = 0
)

const (
	None  Type = 0
	TypeA Type = 1
	TypeB Type = 2
	TypeC Type = 3
)

// Types lists the playable types in ascending order.
var Types = [3]Type{TypeA, TypeB, TypeC}

// New returns a plain cell of the given type.
func New(t Type) Cell {
	return Cell(t) & TypeMask
}

// NewTarget returns a target cell of the given type.
func NewTarget(t Type) Cell {
	return New(t) | Target
}

// FromIndex maps 0, 1, 2 to TypeA, TypeB, TypeC.
// Used with a bounded random draw of 3.
func FromIndex(i int) Type {
	return Types[i]
}

// Type returns the masked type bits.
func (c Cell) Type() Type {
	return Type(c & TypeMask)
}

// IsEmpty reports whether c is the canonical empty cell.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// IsTarget reports whether the target flag is set.
func (c Cell) IsTarget() bool {
	return c&Target != 0
}

// JoinMask returns only the join flags of c.
func (c Cell) JoinMask() Cell {
	return c & JoinMask
}

// Has reports whether every bit of flag is set in c.
func (c Cell) Has(flag Cell) bool {
	return c&flag == flag
}

// With returns c with flag set.
func (c Cell) With(flag Cell) Cell {
	return c | flag
}

// Without returns c with flag cleared.
func (c Cell) Without(flag Cell) Cell {
	return c &^ flag
}

// Bare strips target and join flags, keeping only the type.
func (c Cell) Bare() Cell {
	return c & TypeMask
}

// SameType reports whether every cell has the same masked type as the first.
// Join and target bits are ignored.
func SameType(first Cell, others ...Cell) bool {
	t := first.Type()
	for _, o := range others {
		if o.Type() != t {
			return false
		}
	}
	return true
}

// Opposite returns the join flag that a partner cell carries for join.
// Passing anything other than a single join flag returns Empty.
func Opposite(join Cell) Cell {
	switch join {
	case JoinTop:
		return JoinBottom
	case JoinRight:
		return JoinLeft
	case JoinBottom:
		return JoinTop
	case JoinLeft:
		return JoinRight
	}
	return Empty
}

// Offset returns the row/col delta from a cell to the partner named by join.
func Offset(join Cell) (dRow, dCol int) {
	switch join {
	case JoinTop:
		return 1, 0
	case JoinRight:
		return 0, 1
	case JoinBottom:
		return -1, 0
	case JoinLeft:
		return 0, -1
	}
	return 0, 0
}

// Joins lists the four join flags in top, right, bottom, left order.
var Joins = [4]Cell{JoinTop, JoinRight, JoinBottom, JoinLeft}

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	}
	return "?"
}

// String renders the type followed by flag markers: '*' target, '^' '>' 'v' '<' joins.
// Empty cells render as ".".
func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	var sb strings.Builder
	sb.WriteString(c.Type().String())
	if c.IsTarget() {
		sb.WriteByte('*')
	}
	if c.Has(JoinTop) {
		sb.WriteByte('^')
	}
	if c.Has(JoinRight) {
		sb.WriteByte('>')
	}
	if c.Has(JoinBottom) {
		sb.WriteByte('v')
	}
	if c.Has(JoinLeft) {
		sb.WriteByte('<')
	}
	return sb.String()
}

// Parse reads a cell written by String.
func Parse(s string) (Cell, error) {
	if s == "." {
		return Empty, nil
	}
	if s == "" {
		return Empty, fmt.Errorf("cell: empty token")
	}

	var c Cell
	switch s[0] {
	case 'A':
		c = New(TypeA)
	case 'B':
		c = New(TypeB)
	case 'C':
		c = New(TypeC)
	default:
		return Empty, fmt.Errorf("cell: unknown type %q in %q", s[0], s)
	}

	for _, r := range s[1:] {
		switch r {
		case '*':
			c |= Target
		case '^':
			c |= JoinTop
		case '>':
			c |= JoinRight
		case 'v':
			c |= JoinBottom
		case '<':
			c |= JoinLeft
		default:
			return Empty, fmt.Errorf("cell: unknown flag %q in %q", r, s)
		}
	}
	return c, nil
}
