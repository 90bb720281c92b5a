// Package input turns press/release edges from any number of physical sources
// into per-tick logical actions.
//
// A Queue holds at most one Repeater per Action. Pressing an action that is
// already held does nothing, so a second keyboard (or a touch button) cannot
// restart a repeat cadence in progress. Releases are deferred until after the
// next fire check, so a press and release inside one tick still fires once.
package input

import "fmt"

// Action is a logical player intent.
type Action uint8

const (
	Noop Action = iota
	Left
	Right
	RotateCcw
	RotateCw
	Shove

	// NumActions is one past the highest valid Action.
	NumActions
)

func (a Action) String() string {
	switch a {
	case Noop:
		return "noop"
	case Left:
		return "left"
	case Right:
		return "right"
	case RotateCcw:
		return "rotate-ccw"
	case RotateCw:
		return "rotate-cw"
	case Shove:
		return "shove"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	return a < NumActions
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	for a := Noop; a < NumActions; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return Noop, fmt.Errorf("input: unknown action %q", s)
}
