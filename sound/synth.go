// Package sound synthesizes short cues for session events and plays them
// through the system speaker.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave uint8

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

// oscillator generates a fixed number of samples of one wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, w wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     w,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case waveSaw:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps volume up over the attack and down over the release.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; vol <= 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type note struct {
	freq     float64
	duration time.Duration
}

type voice struct {
	wave  wave
	notes []note
}

var voices = [numCues]voice{
	CueLand: {waveSquare, []note{{110, 60 * time.Millisecond}}},
	CueClear: {waveSine, []note{
		{659.25, 80 * time.Millisecond},
		{880, 120 * time.Millisecond},
	}},
	CueWin: {waveSine, []note{
		{523.25, 120 * time.Millisecond},
		{659.25, 120 * time.Millisecond},
		{783.99, 120 * time.Millisecond},
		{1046.5, 300 * time.Millisecond},
	}},
	CueLose: {waveSaw, []note{
		{220, 200 * time.Millisecond},
		{164.81, 200 * time.Millisecond},
		{110, 400 * time.Millisecond},
	}},
}

const attack = 5 * time.Millisecond

// Generate renders cue c as a finite stream at the given linear volume.
func Generate(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	v := voices[c]
	parts := make([]beep.Streamer, len(v.notes))
	for i, n := range v.notes {
		osc := newOscillator(n.freq, n.duration, v.wave, rate)
		parts[i] = newEnvelope(osc, n.duration, attack, n.duration*3/10, rate)
	}
	return withVolume(beep.Seq(parts...), volume)
}
