// Package sequence implements the three event-sequence aggregates —
// match, count, and match-events — as one collect-and-sort state
// around the pattern executor.
//
// All three variants share the same state machine: update appends
// (timestamp, bitmask) events, combine appends buffers, and finalize
// sorts once, builds an executor for the compiled pattern, and runs
// the variant's entry point. The pattern string and condition count
// are pinned on the first update and follow the configure-once combine
// discipline.
package sequence

import (
	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/internal/conv"
	"github.com/coregx/behavioral/pattern"
	"github.com/coregx/behavioral/pattern/nfa"
)

// State is the shared partial aggregate for the three sequence
// variants. The zero State is a valid combine target; configuration
// propagates on first merge.
type State struct {
	events        event.Events
	pat           *pattern.Pattern
	numConditions int
	configured    bool
}

// NewState returns an unconfigured state; Configure runs on the first
// update once the pattern string and arity are known.
func NewState() *State {
	return &State{}
}

// Configure compiles the pattern and pins the arity, rejecting arity
// outside [2, 32] and surfacing pattern syntax errors for the host to
// report at first-update time. Reconfiguring with identical values is
// a no-op; conflicting values are a host bug and panic with
// ErrConfigMismatch.
func (s *State) Configure(patternStr string, numConditions int) error {
	if s.configured {
		if s.pat.Source() != patternStr || s.numConditions != numConditions {
			panic(conv.ErrConfigMismatch)
		}
		return nil
	}
	if err := conv.ValidateArity(numConditions); err != nil {
		return err
	}
	p, err := pattern.Compile(patternStr, numConditions)
	if err != nil {
		return err
	}
	s.pat = p
	s.numConditions = numConditions
	s.configured = true
	return nil
}

// Configured reports whether the pattern and arity have been pinned.
func (s *State) Configured() bool {
	return s.configured
}

// Update appends one row. NULL timestamps are skipped; NULL condition
// columns must already be coerced to unset bits.
func (s *State) Update(tsUs int64, conditions uint32, tsIsNull bool) {
	s.events.Append(tsUs, conditions, tsIsNull)
}

// Combine appends other's events into s without sorting. A
// zero-initialized target adopts other's configuration first; two
// configured states must carry the same pattern and arity.
func (s *State) Combine(other *State) {
	if other == nil {
		return
	}
	if !s.configured {
		s.pat = other.pat
		s.numConditions = other.numConditions
		s.configured = other.configured
	} else if other.configured &&
		(other.pat.Source() != s.pat.Source() || other.numConditions != s.numConditions) {
		panic(conv.ErrConfigMismatch)
	}
	s.events.AppendFrom(other.events)
}

// exec sorts the buffer (skipping the sort when the host delivered
// rows pre-ordered) and builds the executor.
func (s *State) exec() *nfa.Executor {
	s.events.SortIfNeeded()
	return nfa.New(s.pat)
}

// FinalizeMatch reports whether the pattern matches anywhere in the
// collected events; false for an empty or never-configured state.
func (s *State) FinalizeMatch() bool {
	if !s.configured {
		return false
	}
	return s.exec().Match(s.events)
}

// FinalizeCount returns the number of non-overlapping matches; 0 for
// an empty or never-configured state.
func (s *State) FinalizeCount() int64 {
	if !s.configured {
		return 0
	}
	return s.exec().Count(s.events)
}

// FinalizeMatchEvents returns the timestamps that satisfied each
// Condition step of the first match, in step order; nil when there is
// no match.
func (s *State) FinalizeMatchEvents() []int64 {
	if !s.configured {
		return nil
	}
	return s.exec().MatchEvents(s.events)
}
