package input_test

import (
	"fmt"
	"testing"

	"github.com/plus3/fallmatch/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run ticks the queue n times and returns the tick numbers on which a fired.
func run(q *input.Queue, a input.Action, n int) []int {
	var fired []int
	for tick := 0; tick < n; tick++ {
		q.Update(func(got input.Action) {
			if got == a {
				fired = append(fired, tick)
			}
		})
	}
	return fired
}

func TestRepeatCadence(t *testing.T) {
	tests := []struct {
		action input.Action
		want   []int
	}{
		{input.Left, []int{0, 15, 21, 27, 33, 39}},
		{input.Right, []int{0, 15, 21, 27, 33, 39}},
		{input.Shove, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36, 38}},
		{input.RotateCw, []int{0}},
		{input.RotateCcw, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			q := input.NewQueue(input.DefaultRepeatTable())
			require.True(t, q.Down(tt.action))

			assert.Equal(t, tt.want, run(q, tt.action, 40))
		})
	}
}

func TestSingleFireIsRemoved(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.RotateCw)

	run(q, input.RotateCw, 1)
	assert.False(t, q.Held(input.RotateCw))

	// Still physically held, but a fresh press fires again.
	assert.True(t, q.Down(input.RotateCw))
	assert.Equal(t, []int{0}, run(q, input.RotateCw, 3))
}

func TestSecondDownKeepsCadence(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	require.True(t, q.Down(input.Left))

	fired := run(q, input.Left, 10)
	assert.False(t, q.Down(input.Left), "already held")
	fired = append(fired, run(q, input.Left, 10)...)

	// Second run restarts its tick numbering at 0; 5 there is 15 overall.
	assert.Equal(t, []int{0, 5}, fired)
}

func TestDownUpSameTickFiresOnce(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.Shove)
	q.Up(input.Shove)

	assert.True(t, q.Held(input.Shove), "release is deferred")
	assert.Equal(t, []int{0}, run(q, input.Shove, 5))
	assert.Equal(t, 0, q.Len())
}

func TestUpStopsRepeat(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.Right)

	assert.Equal(t, []int{0}, run(q, input.Right, 14))
	q.Up(input.Right)
	assert.Empty(t, run(q, input.Right, 10), "tick 14 of the cadence is not a firing tick")
	assert.False(t, q.Held(input.Right))

	q.Up(input.Right) // unknown release is ignored
}

func TestFiringOrderFollowsPresses(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.Shove)
	q.Down(input.Left)
	q.Down(input.Noop)
	q.Down(input.RotateCcw)

	var got []input.Action
	q.Update(func(a input.Action) { got = append(got, a) })
	assert.Equal(t, []input.Action{input.Shove, input.Left, input.Noop, input.RotateCcw}, got)

	// Single-fire entries are gone; the order of the rest is kept.
	got = got[:0]
	q.Update(func(a input.Action) { got = append(got, a) })
	assert.Empty(t, got)
	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Held(input.Shove))
	assert.True(t, q.Held(input.Left))
}

func TestResetAndInvalid(t *testing.T) {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.Left)
	q.Down(input.Right)
	q.Reset()

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, run(q, input.Left, 3))
	assert.Panics(t, func() { q.Down(input.NumActions) })
}

func TestCustomRepeat(t *testing.T) {
	table := input.DefaultRepeatTable()
	table[input.RotateCw] = input.Repeat{Delay: 3, Rate: 1}

	q := input.NewQueue(table)
	q.Down(input.RotateCw)
	assert.Equal(t, []int{0, 3, 4, 5}, run(q, input.RotateCw, 6))
}

func TestParseAction(t *testing.T) {
	for a := input.Noop; a < input.NumActions; a++ {
		got, err := input.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := input.ParseAction("jump")
	assert.Error(t, err)
	assert.Equal(t, "action(9)", input.Action(9).String())
}

func ExampleQueue() {
	q := input.NewQueue(input.DefaultRepeatTable())
	q.Down(input.Left)
	q.Down(input.RotateCw)
	q.Up(input.Left)

	for tick := 0; tick < 3; tick++ {
		q.Update(func(a input.Action) { fmt.Println(tick, a) })
	}
	// Output:
	// 0 left
	// 0 rotate-cw
}
