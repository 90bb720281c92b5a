package session_test

import (
	"testing"

	"github.com/plus3/fallmatch/cell"
	"github.com/plus3/fallmatch/input"
	"github.com/plus3/fallmatch/session"
	"github.com/stretchr/testify/require"
)

// script replays fixed draws (each reduced mod n), cycling when exhausted.
type script struct {
	vals []int
	i    int
}

func (s *script) NextBoundedInt(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type transition struct{ From, To session.State }

type recorder struct {
	session.NopListener
	transitions []transition
	nexts       [][2]cell.Cell
	moves       []session.ActivePlacement
}

func (r *recorder) OnStateChanged(from, to session.State) {
	r.transitions = append(r.transitions, transition{from, to})
}

func (r *recorder) OnNextChanged(next [2]cell.Cell) {
	r.nexts = append(r.nexts, next)
}

func (r *recorder) OnActiveMoved(p session.ActivePlacement) {
	r.moves = append(r.moves, p)
}

// singleTarget puts one A target at (0,0) and deals A,B as the first piece.
func singleTarget(rec *recorder) session.Config {
	cfg := session.DefaultConfig(&script{vals: []int{0, 0, 0, 0, 1}})
	cfg.Targets = 1
	cfg.HighestRow = 0
	if rec != nil {
		cfg.Listener = rec
	}
	return cfg
}

func started(t *testing.T, cfg session.Config) *session.Session {
	t.Helper()
	s, err := session.New(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

// untilState updates s until it reaches want, failing after limit ticks.
func untilState(t *testing.T, s *session.Session, want session.State, limit int) int {
	t.Helper()
	for n := 1; n <= limit; n++ {
		s.Update()
		if s.State() == want {
			return n
		}
	}
	require.Failf(t, "state not reached", "want %v within %d ticks, still %v", want, limit, s.State())
	return 0
}

func step(s *session.Session, a input.Action) session.ActivePlacement {
	s.Push(a)
	s.Update()
	p, _ := s.Active()
	return p
}

// activeAfterRelease is the number of updates from Start to the first Active tick:
// one for Pregame, ReleaseDelay counting ticks, one spawning tick.
const activeAfterRelease = 1 + session.DefaultReleaseDelay + 1
