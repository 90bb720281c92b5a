package input

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Queue coalesces press/release edges into at most one firing per action per tick.
// Actions fire in the order they were first pressed.
type Queue struct {
	table RepeatTable
	held  *intmap.Map[Action, *Repeater]
	order []Action
}

// NewQueue creates an empty queue using table for repeat cadences.
func NewQueue(table RepeatTable) *Queue {
	return &Queue{
		table: table,
		held:  intmap.New[Action, *Repeater](int(NumActions)),
		order: make([]Action, 0, NumActions),
	}
}

// Down registers a press of a. It returns false, leaving the existing
// cadence untouched, when a is already held.
func (q *Queue) Down(a Action) bool {
	if !a.Valid() {
		panic(fmt.Sprintf("input: invalid action %d", uint8(a)))
	}
	if _, added := q.held.PutIfNotExists(a, newRepeater(q.table[a])); !added {
		return false
	}
	q.order = append(q.order, a)
	return true
}

// Up marks a as released. The entry stays until the next Update has checked it.
func (q *Queue) Up(a Action) {
	if r, ok := q.held.Get(a); ok {
		r.Release()
	}
}

// Update runs one tick: every held action that should fire is passed to emit,
// then finished entries are removed. emit must not call back into q.
func (q *Queue) Update(emit func(Action)) {
	kept := q.order[:0]
	for _, a := range q.order {
		r, _ := q.held.Get(a)
		if r.ShouldFire() {
			emit(a)
		}
		if r.Done() {
			q.held.Del(a)
			continue
		}
		kept = append(kept, a)
	}
	q.order = kept
}

// Held reports whether a is currently registered.
func (q *Queue) Held(a Action) bool {
	return q.held.Has(a)
}

// Len is the number of registered actions.
func (q *Queue) Len() int {
	return q.held.Len()
}

// Reset drops every registered action without firing.
func (q *Queue) Reset() {
	q.held.Clear()
	q.order = q.order[:0]
}
