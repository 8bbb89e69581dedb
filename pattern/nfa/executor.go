// Package nfa executes compiled event-sequence patterns against a
// timestamp-ordered event buffer.
//
// It mirrors the compile/execute split of the pattern package:
// pattern.Compile runs once per distinct pattern string and classifies
// the step sequence into a Shape; an Executor is then built per
// finalize and dispatches each of its three entry points (Match, Count,
// MatchEvents) to the cheapest scanner that can correctly run that
// shape — an O(n) filter for a single condition, an O(n*k)
// sliding-window scan for adjacent conditions, an O(n) single-pass scan
// for wildcard-separated conditions, and the full backtracking
// interpreter for anything involving '.' or time constraints.
package nfa

import (
	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/pattern"
)

// Executor evaluates one compiled pattern against event buffers. It
// owns the backtracking stack and the collected-timestamp scratch, so
// repeated evaluations within one finalize reuse the same allocations.
// Like the states that use it, an Executor is single-threaded.
type Executor struct {
	pat   *pattern.Pattern
	steps []pattern.Step

	// conds is the 1-based condition index of each Condition step, in
	// step order. The fast paths scan over this and never look at the
	// other step kinds (their shapes guarantee there are none).
	conds []int

	stack     []frame
	collected []int64
}

// New builds an Executor for a compiled pattern.
func New(p *pattern.Pattern) *Executor {
	x := &Executor{pat: p, steps: p.Steps()}
	for _, s := range x.steps {
		if s.Kind == pattern.StepCondition {
			x.conds = append(x.conds, s.Condition)
		}
	}
	return x
}

// Match reports whether the pattern matches anywhere in events,
// short-circuiting on the first accept. events must already be in
// non-decreasing timestamp order.
func (x *Executor) Match(events event.Events) bool {
	switch x.pat.Shape() {
	case pattern.ShapeSingleCondition:
		return x.matchSingle(events)
	case pattern.ShapeAdjacentConditions:
		return x.matchAdjacent(events)
	case pattern.ShapeWildcardSeparated:
		return x.matchWildcard(events)
	default:
		ok, _ := x.search(events, 0, false)
		return ok
	}
}

// Count returns the number of non-overlapping matches. After each
// accept the scan restarts at the event immediately after the last
// event the match consumed.
func (x *Executor) Count(events event.Events) int64 {
	switch x.pat.Shape() {
	case pattern.ShapeSingleCondition:
		return x.countSingle(events)
	case pattern.ShapeAdjacentConditions:
		return x.countAdjacent(events)
	case pattern.ShapeWildcardSeparated:
		return x.countWildcard(events)
	default:
		return x.countNFA(events)
	}
}

// MatchEvents returns the timestamps that satisfied each Condition
// step of the first match, in step order, or nil if there is no match.
// Wildcard and time-constraint steps contribute no timestamp.
func (x *Executor) MatchEvents(events event.Events) []int64 {
	switch x.pat.Shape() {
	case pattern.ShapeSingleCondition:
		return x.matchEventsSingle(events)
	case pattern.ShapeAdjacentConditions:
		return x.matchEventsAdjacent(events)
	case pattern.ShapeWildcardSeparated:
		return x.matchEventsWildcard(events)
	default:
		return x.matchEventsNFA(events)
	}
}
