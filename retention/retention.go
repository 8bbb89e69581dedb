// Package retention implements the cohort retention aggregate: a
// single 32-bit mask where bit i records whether the i-th condition
// fired for any row the state has seen.
//
// Update is one OR, combine is one OR, finalize unpacks the mask into
// a boolean array. The combine is associative, commutative and
// idempotent, so any segment-tree merge topology — including repeated
// merges of the same partial — yields the same result.
package retention

import "github.com/coregx/behavioral/internal/conv"

// State is the O(1) partial aggregate. The zero State is a valid
// combine target; the condition count propagates on first merge.
type State struct {
	mask          uint32
	numConditions int
}

// New returns an empty state for numConditions cohort slots, rejecting
// arity outside [2, 32] at registration time.
func New(numConditions int) (*State, error) {
	if err := conv.ValidateArity(numConditions); err != nil {
		return nil, err
	}
	return &State{numConditions: numConditions}, nil
}

// Update ORs one row's fired-condition bitmask into the state. NULL
// booleans are false, i.e. absent from the mask; the caller builds the
// mask with bit i-1 set iff condition i fired.
func (s *State) Update(fired uint32) {
	s.mask |= fired
}

// Combine ORs other's mask into s. An unconfigured target adopts the
// source's arity; two configured states must agree.
func (s *State) Combine(other *State) {
	if other == nil {
		return
	}
	if s.numConditions == 0 {
		s.numConditions = other.numConditions
	} else if other.numConditions != 0 && other.numConditions != s.numConditions {
		panic(conv.ErrConfigMismatch)
	}
	s.mask |= other.mask
}

// Finalize unpacks the mask into a boolean array of length
// numConditions: element i-1 is true iff condition i fired for any row.
func (s *State) Finalize() []bool {
	out := make([]bool, s.numConditions)
	for i := range out {
		out[i] = conv.HasBit(s.mask, i+1)
	}
	return out
}
