// Package sessionize implements the gap-based session boundary
// counter: a new session begins when the gap between consecutive
// timestamps strictly exceeds the configured threshold.
//
// The state is O(1) regardless of input size — it tracks only the
// first and last timestamp of its contiguous range plus the count of
// boundaries observed inside it — which is what makes segment-tree
// windowing over billion-row partitions cheap: every combine is a
// handful of integer operations.
package sessionize

import "github.com/coregx/behavioral/internal/conv"

// State is the partial aggregate for one contiguous range of a
// timestamp-ordered partition. The zero State is a valid combine
// target: configuration (the gap) propagates on first merge.
type State struct {
	firstTs    int64
	lastTs     int64
	boundaries uint64
	gapUs      int64
	nonEmpty   bool
	configured bool
}

// NewState returns a configured, empty state for the given gap.
func NewState(gapUs int64) *State {
	return &State{gapUs: gapUs, configured: true}
}

// Update extends the range with one row's timestamp, counting a
// boundary when the jump from the previous timestamp strictly exceeds
// the gap (an exactly-equal interval does not start a new session).
// NULL timestamps are skipped. Rows arrive in non-decreasing timestamp
// order within one state; that is the host's ORDER BY contract for
// window frames.
func (s *State) Update(tsUs int64, tsIsNull bool) {
	if tsIsNull {
		return
	}
	if !s.nonEmpty {
		s.firstTs, s.lastTs, s.nonEmpty = tsUs, tsUs, true
		return
	}
	if conv.DeltaUs(s.lastTs, tsUs) > s.gapUs {
		s.boundaries++
	}
	s.lastTs = tsUs
}

// Combine merges other into s in O(1): the merged range spans
// s.first..other.last, and the only new boundary candidate is the seam
// between s's last and other's first timestamp. Either side may be
// empty; an unconfigured target adopts the source's gap. Combining two
// configured states with different gaps is a host bug and panics with
// ErrConfigMismatch.
func (s *State) Combine(other *State) {
	if other == nil {
		return
	}
	if !s.configured {
		s.gapUs = other.gapUs
		s.configured = other.configured
	} else if other.configured && other.gapUs != s.gapUs {
		panic(conv.ErrConfigMismatch)
	}
	if !other.nonEmpty {
		return
	}
	if !s.nonEmpty {
		s.firstTs, s.lastTs, s.boundaries = other.firstTs, other.lastTs, other.boundaries
		s.nonEmpty = true
		return
	}
	s.boundaries += other.boundaries
	if conv.DeltaUs(s.lastTs, other.firstTs) > s.gapUs {
		s.boundaries++
	}
	s.lastTs = other.lastTs
}

// Empty reports whether the state has seen no (non-NULL) rows.
func (s *State) Empty() bool {
	return !s.nonEmpty
}

// Finalize returns the boundary count for the state's range: the
// number of strictly-greater-than-gap jumps observed. For an empty
// state this is 0.
func (s *State) Finalize() uint64 {
	return s.boundaries
}

// SessionID returns the 1-based session index of the range's last row
// (boundaries+1), or 0 for an empty state. Hosts whose window
// semantics want the raw boundary count use Finalize instead.
func (s *State) SessionID() uint64 {
	if !s.nonEmpty {
		return 0
	}
	return s.boundaries + 1
}
