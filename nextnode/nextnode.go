// Package nextnode implements the sequence-next-node aggregate: match
// a base condition plus an ordered chain of prefix conditions against
// consecutive events, then emit the value column of the event
// immediately after the chain.
//
// Rows carry a shareable immutable string value alongside the
// timestamp and condition bitmask; bit 1 is the base condition and
// bits 2..m+1 are the m prefix conditions in chain order.
package nextnode

import (
	"fmt"

	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/internal/conv"
)

// Direction selects the traversal order over the timestamp-sorted
// events.
type Direction uint8

const (
	// Forward traverses earliest-to-latest.
	Forward Direction = iota
	// Backward traverses latest-to-earliest, searching for a suffix.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Anchor selects which matching instance's neighbor to emit.
type Anchor uint8

const (
	// Head anchors the chain at the first event in traversal order;
	// valid only with Forward.
	Head Anchor = iota
	// Tail anchors the chain at the last event in time, i.e. the
	// first in Backward traversal order; valid only with Backward.
	Tail
	// FirstMatch emits the earliest chain match in traversal order.
	FirstMatch
	// LastMatch emits the latest chain match in traversal order.
	LastMatch
)

func (a Anchor) String() string {
	switch a {
	case Head:
		return "head"
	case Tail:
		return "tail"
	case FirstMatch:
		return "first_match"
	default:
		return "last_match"
	}
}

// ConfigError reports an invalid direction/anchor combination at
// registration time. An out-of-range prefix count is reported by the
// arity check instead, as an *ArityError.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "nextnode: " + e.Msg
}

// State is the partial aggregate for one group. The zero State is a
// valid combine target; configuration propagates on first merge.
type State struct {
	events     event.NextNodeEvents
	direction  Direction
	anchor     Anchor
	numPrefix  int
	configured bool
}

// NewState returns a configured, empty state for m prefix conditions
// (total arity m+1 including the base condition, bounded to [2, 32]).
// Head anchors only make sense traversing forward and Tail anchors
// backward; the mismatched combinations are rejected.
func NewState(direction Direction, anchor Anchor, numPrefix int) (*State, error) {
	if err := conv.ValidateArity(numPrefix + 1); err != nil {
		return nil, err
	}
	if direction == Forward && anchor == Tail {
		return nil, &ConfigError{Msg: "tail anchor requires backward direction"}
	}
	if direction == Backward && anchor == Head {
		return nil, &ConfigError{Msg: "head anchor requires forward direction"}
	}
	return &State{direction: direction, anchor: anchor, numPrefix: numPrefix, configured: true}, nil
}

// Update appends one row. NULL timestamps are skipped; value may be
// NullValue (a NULL value is emittable).
func (s *State) Update(tsUs int64, value event.Value, conditions uint32, tsIsNull bool) {
	s.events.Append(tsUs, conditions, value, tsIsNull)
}

// Combine appends other's events into s without sorting. A
// zero-initialized target adopts other's configuration; two configured
// states must agree exactly.
func (s *State) Combine(other *State) {
	if other == nil {
		return
	}
	if !s.configured {
		s.direction = other.direction
		s.anchor = other.anchor
		s.numPrefix = other.numPrefix
		s.configured = other.configured
	} else if other.configured &&
		(other.direction != s.direction || other.anchor != s.anchor || other.numPrefix != s.numPrefix) {
		panic(conv.ErrConfigMismatch)
	}
	s.events.AppendFrom(other.events)
}

// at returns the event at traversal position i: slice order for
// Forward, reversed for Backward.
func (s *State) at(i int) event.NextNodeEvent {
	if s.direction == Backward {
		return s.events[len(s.events)-1-i]
	}
	return s.events[i]
}

// matchAt reports whether the chain anchors at traversal position p:
// the event at p satisfies the base condition and the next numPrefix
// events satisfy the prefix conditions in order.
func (s *State) matchAt(p int) bool {
	if p+s.numPrefix >= len(s.events) {
		return false
	}
	if !s.at(p).Has(1) {
		return false
	}
	for i := 1; i <= s.numPrefix; i++ {
		if !s.at(p + i).Has(1 + i) {
			return false
		}
	}
	return true
}

// emit returns the value of the event immediately after the chain
// anchored at p, or NullValue when no adjacent event exists.
func (s *State) emit(p int) event.Value {
	next := p + s.numPrefix + 1
	if next >= len(s.events) {
		return event.NullValue
	}
	return s.at(next).Value
}

// Finalize sorts the collected events, locates the anchor's chain
// match, and returns the adjacent event's value. It returns NullValue
// when no chain matches or no adjacent event exists; note a row's own
// NULL value is also emittable, so hosts distinguishing the two cases
// should check for a match explicitly.
func (s *State) Finalize() event.Value {
	s.events.SortIfNeeded()
	n := len(s.events)
	switch s.anchor {
	case Head, Tail:
		if n > 0 && s.matchAt(0) {
			return s.emit(0)
		}
	case FirstMatch:
		for p := 0; p < n; p++ {
			if s.matchAt(p) {
				return s.emit(p)
			}
		}
	case LastMatch:
		for p := n - 1; p >= 0; p-- {
			if s.matchAt(p) {
				return s.emit(p)
			}
		}
	default:
		panic(fmt.Sprintf("nextnode: invalid anchor %d", s.anchor))
	}
	return event.NullValue
}
