package input

const (
	ShiftDelay = 15
	ShiftRate  = 6
	ShoveDelay = 2
	ShoveRate  = 2
)

// Repeat is the cadence of a held action. The zero value is single-fire.
type Repeat struct {
	Delay int `yaml:"delay"`
	Rate  int `yaml:"rate"`
}

// SingleFire reports whether the action fires only once per press.
func (r Repeat) SingleFire() bool {
	return r.Delay <= 0 || r.Rate <= 0
}

// RepeatTable selects the cadence for each action.
type RepeatTable [NumActions]Repeat

// DefaultRepeatTable shifts sideways with a long initial delay, shoves
// almost continuously, and rotates once per press.
func DefaultRepeatTable() RepeatTable {
	var t RepeatTable
	t[Left] = Repeat{Delay: ShiftDelay, Rate: ShiftRate}
	t[Right] = Repeat{Delay: ShiftDelay, Rate: ShiftRate}
	t[Shove] = Repeat{Delay: ShoveDelay, Rate: ShoveRate}
	return t
}

// Repeater tracks one held action.
type Repeater struct {
	repeat   Repeat
	ticks    int
	released bool
}

func newRepeater(r Repeat) *Repeater {
	return &Repeater{repeat: r}
}

// ShouldFire advances the repeater by one tick and reports whether the action
// fires on this tick. A single-fire repeater fires on its first tick only; a
// repeating one fires on tick 0, on tick Delay, then every Rate ticks.
func (r *Repeater) ShouldFire() bool {
	ticks := r.ticks
	r.ticks++

	if r.repeat.SingleFire() {
		return ticks == 0
	}
	return repeaty(ticks, r.repeat.Delay, r.repeat.Rate)
}

// Release marks the repeater for removal after its next fire check.
func (r *Repeater) Release() {
	r.released = true
}

// Released reports whether Release was called.
func (r *Repeater) Released() bool {
	return r.released
}

// Done reports whether the repeater can be dropped from its queue.
func (r *Repeater) Done() bool {
	return r.released || (r.repeat.SingleFire() && r.ticks > 0)
}

// Ticks is the number of fire checks performed so far.
func (r *Repeater) Ticks() int {
	return r.ticks
}

func repeaty(ticks, delay, rate int) bool {
	return ticks == 0 ||
		ticks == delay ||
		(ticks > delay && (ticks-delay)%rate == 0)
}
