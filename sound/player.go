package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/fallmatch/session"
)

// Cue is a sound played in response to a game event.
type Cue uint8

const (
	CueLand Cue = iota
	CueClear
	CueWin
	CueLose
	numCues
)

func (c Cue) String() string {
	switch c {
	case CueLand:
		return "land"
	case CueClear:
		return "clear"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	}
	return fmt.Sprintf("cue(%d)", c)
}

// SampleRate is the rate the speaker is opened at.
const SampleRate = beep.SampleRate(44100)

// CueFor maps a session state transition onto the cue it should play.
func CueFor(from, to session.State) (Cue, bool) {
	switch {
	case to == session.DoneWon:
		return CueWin, true
	case to == session.DoneLost:
		return CueLose, true
	case from == session.Active && to == session.Settle:
		return CueLand, true
	}
	return 0, false
}

// Player collects cues raised during a frame and plays each at most once per
// Flush. A Player is used from the game goroutine only.
type Player struct {
	out     func(beep.Streamer)
	rate    beep.SampleRate
	volume  float64
	pending [numCues]bool
}

// NewPlayer opens the speaker. Only one Player should be opened per process.
func NewPlayer(volume float64) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	return newPlayer(func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}, SampleRate, volume), nil
}

// Silent returns a Player that drops everything.
func Silent() *Player {
	return newPlayer(nil, SampleRate, 0)
}

func newPlayer(out func(beep.Streamer), rate beep.SampleRate, volume float64) *Player {
	return &Player{out: out, rate: rate, volume: volume}
}

// Raise marks c to be played on the next Flush.
func (p *Player) Raise(c Cue) {
	if c < numCues {
		p.pending[c] = true
	}
}

// OnStateChanged raises the cue for a session transition, if any.
func (p *Player) OnStateChanged(from, to session.State) {
	if c, ok := CueFor(from, to); ok {
		p.Raise(c)
	}
}

// Flush plays the pending cues in Cue order and clears them.
func (p *Player) Flush() {
	for c := range numCues {
		if !p.pending[c] {
			continue
		}
		p.pending[c] = false
		if p.out != nil {
			p.out(Generate(c, p.rate, p.volume))
		}
	}
}
