package session

import "fmt"

// State is the lifecycle phase of a session.
type State uint8

const (
	Pregame State = iota
	Releasing
	Active
	Settle
	DoneLost
	DoneWon
)

func (s State) String() string {
	switch s {
	case Pregame:
		return "pregame"
	case Releasing:
		return "releasing"
	case Active:
		return "active"
	case Settle:
		return "settle"
	case DoneLost:
		return "done-lost"
	case DoneWon:
		return "done-won"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == DoneLost || s == DoneWon
}
