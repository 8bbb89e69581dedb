package nfa

import (
	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/internal/conv"
	"github.com/coregx/behavioral/pattern"
)

// frame is one suspended alternative of the lazy interpreter: resume
// the AnyEvents step at steps[step] having already consumed events up
// to (but not including) ev. lastTs/hasLast and the collected length
// snapshot whatever the choice point had, so backtracking restores
// them exactly.
type frame struct {
	step, ev  int
	lastTs    int64
	hasLast   bool
	collected int
}

// search looks for the match with the leftmost starting event at or
// after from, trying each start position in order. On success it
// returns the index just past the last event the match consumed, which
// is where a non-overlapping Count restarts.
func (x *Executor) search(events event.Events, from int, collect bool) (bool, int) {
	for start := from; start <= len(events); start++ {
		if ok, end := x.tryMatch(events, start, collect); ok {
			return true, end
		}
	}
	return false, len(events)
}

// tryMatch runs the backtracking interpreter anchored at start.
//
// The interpreter is iterative: the only nondeterministic step is
// AnyEvents, and its lazy semantics (prefer advancing the pattern,
// consume another event only when the remainder fails) reduce to a
// single ordered alternative per choice point, pushed onto x.stack and
// popped on failure. The stack and the collected scratch are reused
// across calls within one finalize.
func (x *Executor) tryMatch(events event.Events, start int, collect bool) (bool, int) {
	x.stack = x.stack[:0]
	if collect {
		x.collected = x.collected[:0]
	}
	step, ev := 0, start
	var lastTs int64
	hasLast := false
	for {
		if step == len(x.steps) {
			return true, ev
		}
		s := x.steps[step]
		ok := false
		switch s.Kind {
		case pattern.StepCondition:
			if ev < len(events) && conv.HasBit(events[ev].Conditions, s.Condition) {
				lastTs = events[ev].TimestampUs
				hasLast = true
				if collect {
					x.collected = append(x.collected, lastTs)
				}
				step++
				ev++
				ok = true
			}
		case pattern.StepOneEvent:
			if ev < len(events) {
				step++
				ev++
				ok = true
			}
		case pattern.StepAnyEvents:
			// Lazy: advance the pattern now; remember the
			// consume-one-more alternative for backtracking.
			if ev < len(events) {
				x.stack = append(x.stack, frame{
					step: step, ev: ev + 1,
					lastTs: lastTs, hasLast: hasLast,
					collected: len(x.collected),
				})
			}
			step++
			ok = true
		case pattern.StepTimeConstraint:
			// Vacuously satisfied before any Condition step has
			// matched; otherwise compared against the current event
			// in truncated whole seconds.
			if !hasLast {
				step++
				ok = true
			} else if ev < len(events) {
				elapsed := conv.ElapsedSeconds(lastTs, events[ev].TimestampUs)
				if s.Op.Eval(elapsed, s.Threshold) {
					step++
					ok = true
				}
			}
		}
		if ok {
			continue
		}
		if len(x.stack) == 0 {
			return false, start
		}
		f := x.stack[len(x.stack)-1]
		x.stack = x.stack[:len(x.stack)-1]
		step, ev, lastTs, hasLast = f.step, f.ev, f.lastTs, f.hasLast
		if collect {
			x.collected = x.collected[:f.collected]
		}
	}
}

// countNFA counts non-overlapping matches, restarting after the last
// consumed event. A zero-width match (a pattern of only AnyEvents and
// time-constraint steps) still makes progress by one event.
func (x *Executor) countNFA(events event.Events) int64 {
	var n int64
	pos := 0
	for pos <= len(events) {
		ok, end := x.search(events, pos, false)
		if !ok {
			break
		}
		n++
		if end <= pos {
			pos++
		} else {
			pos = end
		}
	}
	return n
}

// matchEventsNFA returns the Condition-step timestamps of the first
// match, copied out of the reusable scratch.
func (x *Executor) matchEventsNFA(events event.Events) []int64 {
	ok, _ := x.search(events, 0, true)
	if !ok {
		return nil
	}
	out := make([]int64, len(x.collected))
	copy(out, x.collected)
	return out
}
