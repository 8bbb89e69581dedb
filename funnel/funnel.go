// Package funnel implements the window-funnel aggregate: the maximum
// prefix length k of N ordered conditions such that events matching
// conditions 1..k occur at strictly increasing positions within a
// sliding time window.
//
// Update appends rows, combine appends buffers (deferring the sort),
// and finalize sorts once and runs a greedy forward scan per
// condition-1 entry point. Six independently composable mode flags
// tighten the scan's rules; see Mode.
package funnel

import (
	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/internal/conv"
)

// State is the partial aggregate for one group: the collected events
// plus the configuration pinned at registration. The zero State is a
// valid combine target; configuration propagates on first merge.
type State struct {
	events        event.Events
	windowUs      int64
	mode          Mode
	numConditions int
	configured    bool
}

// NewState returns a configured, empty funnel state, rejecting arity
// outside [2, 32].
func NewState(windowUs int64, mode Mode, numConditions int) (*State, error) {
	if err := conv.ValidateArity(numConditions); err != nil {
		return nil, err
	}
	return &State{windowUs: windowUs, mode: mode, numConditions: numConditions, configured: true}, nil
}

// Update appends one row. NULL timestamps are skipped; a NULL
// condition column must already be coerced to an unset bit.
func (s *State) Update(tsUs int64, conditions uint32, tsIsNull bool) {
	s.events.Append(tsUs, conditions, tsIsNull)
}

// Combine appends other's events into s without sorting (deferred to
// finalize). A zero-initialized target adopts other's configuration
// first; two configured states must agree exactly, anything else is a
// host bug and panics with ErrConfigMismatch.
func (s *State) Combine(other *State) {
	if other == nil {
		return
	}
	if !s.configured {
		s.windowUs = other.windowUs
		s.mode = other.mode
		s.numConditions = other.numConditions
		s.configured = other.configured
	} else if other.configured &&
		(other.windowUs != s.windowUs || other.mode != s.mode || other.numConditions != s.numConditions) {
		panic(conv.ErrConfigMismatch)
	}
	s.events.AppendFrom(other.events)
}

// Finalize sorts the collected events and returns the deepest funnel
// step reached, in [0, numConditions]. An event stream with no
// condition-1 match returns 0.
func (s *State) Finalize() int {
	s.events.SortIfNeeded()
	best := 0
	for i := range s.events {
		if !s.events[i].Has(1) {
			continue
		}
		if step := s.scanFrom(i); step > best {
			best = step
			if best == s.numConditions {
				break
			}
		}
	}
	return best
}

// scanFrom runs one entry's forward scan, starting at the event that
// fired condition 1.
func (s *State) scanFrom(entry int) int {
	n := s.numConditions
	entryTs := s.events[entry].TimestampUs
	lastTs := entryTs
	step := 1

	// The entry event itself may satisfy later conditions too, unless
	// strict_once caps it at the step it already advanced or
	// strict_increase forbids two matched steps sharing a timestamp.
	if !s.mode.Has(StrictOnce) && !s.mode.Has(StrictIncrease) {
		for step < n && s.events[entry].Has(step+1) {
			step++
		}
	}
	if step == n {
		return n
	}

	for j := entry + 1; j < len(s.events); j++ {
		e := s.events[j]
		if conv.DeltaUs(entryTs, e.TimestampUs) > s.windowUs {
			break
		}
		if s.mode.Has(StrictDeduplication) && e.TimestampUs == lastTs {
			continue
		}
		if s.mode.Has(AllowReentry) && e.Has(1) {
			entryTs = e.TimestampUs
		}
		advanced := false
		for step < n && e.Has(step+1) {
			if s.mode.Has(StrictIncrease) && e.TimestampUs <= lastTs {
				break
			}
			step++
			lastTs = e.TimestampUs
			advanced = true
			if s.mode.Has(StrictOnce) {
				break
			}
		}
		if step == n {
			return n
		}
		if advanced {
			continue
		}
		// An event that fires the last matched condition again (or,
		// under strict_order, any already-matched condition) without
		// advancing invalidates this entry. An event firing both the
		// repeat and the next condition advanced above and never
		// reaches here.
		if s.mode.Has(Strict) && e.Has(step) {
			break
		}
		if s.mode.Has(StrictOrder) && e.Conditions&((uint32(1)<<uint32(step))-1) != 0 {
			break
		}
	}
	return step
}
