package session

import "github.com/plus3/fallmatch/cell"

// TargetTally counts uncleared targets per type.
type TargetTally [len(cell.Types)]int

// Add records one more target of type t.
func (tt *TargetTally) Add(t cell.Type) {
	if i, ok := tallyIndex(t); ok {
		tt[i]++
	}
}

// Remove records one cleared target of type t. Counts never go below zero.
func (tt *TargetTally) Remove(t cell.Type) {
	if i, ok := tallyIndex(t); ok && tt[i] > 0 {
		tt[i]--
	}
}

// Count returns the remaining targets of type t.
func (tt TargetTally) Count(t cell.Type) int {
	if i, ok := tallyIndex(t); ok {
		return tt[i]
	}
	return 0
}

// Total is the sum over all types.
func (tt TargetTally) Total() int {
	return tt[0] + tt[1] + tt[2]
}

func tallyIndex(t cell.Type) (int, bool) {
	if t < cell.TypeA || t > cell.TypeC {
		return 0, false
	}
	return int(t) - 1, true
}
