package nfa

import (
	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/internal/conv"
)

// Single condition: an O(n) filter over the bitmask.

func (x *Executor) matchSingle(events event.Events) bool {
	bit := conv.Bit(x.conds[0])
	for _, e := range events {
		if e.Conditions&bit != 0 {
			return true
		}
	}
	return false
}

func (x *Executor) countSingle(events event.Events) int64 {
	bit := conv.Bit(x.conds[0])
	var n int64
	for _, e := range events {
		if e.Conditions&bit != 0 {
			n++
		}
	}
	return n
}

func (x *Executor) matchEventsSingle(events event.Events) []int64 {
	bit := conv.Bit(x.conds[0])
	for _, e := range events {
		if e.Conditions&bit != 0 {
			return []int64{e.TimestampUs}
		}
	}
	return nil
}

// Adjacent conditions: an O(n*k) sliding-window scan. adjacentAt
// reports whether the k conditions match the k events starting at i.

func (x *Executor) adjacentAt(events event.Events, i int) bool {
	for j, c := range x.conds {
		if !conv.HasBit(events[i+j].Conditions, c) {
			return false
		}
	}
	return true
}

func (x *Executor) matchAdjacent(events event.Events) bool {
	k := len(x.conds)
	for i := 0; i+k <= len(events); i++ {
		if x.adjacentAt(events, i) {
			return true
		}
	}
	return false
}

func (x *Executor) countAdjacent(events event.Events) int64 {
	k := len(x.conds)
	var n int64
	for i := 0; i+k <= len(events); {
		if x.adjacentAt(events, i) {
			n++
			i += k
		} else {
			i++
		}
	}
	return n
}

func (x *Executor) matchEventsAdjacent(events event.Events) []int64 {
	k := len(x.conds)
	for i := 0; i+k <= len(events); i++ {
		if x.adjacentAt(events, i) {
			out := make([]int64, k)
			for j := range out {
				out[j] = events[i+j].TimestampUs
			}
			return out
		}
	}
	return nil
}

// Wildcard-separated (Condition [AnyEvents Condition]*): a single
// forward pass advancing the needed-condition cursor on every hit.
// Each condition consumes its own event, matching the interpreter's
// behavior of never satisfying two Condition steps from one event.

func (x *Executor) matchWildcard(events event.Events) bool {
	idx := 0
	for _, e := range events {
		if conv.HasBit(e.Conditions, x.conds[idx]) {
			idx++
			if idx == len(x.conds) {
				return true
			}
		}
	}
	return false
}

func (x *Executor) countWildcard(events event.Events) int64 {
	var n int64
	idx := 0
	for _, e := range events {
		if conv.HasBit(e.Conditions, x.conds[idx]) {
			idx++
			if idx == len(x.conds) {
				n++
				idx = 0
			}
		}
	}
	return n
}

func (x *Executor) matchEventsWildcard(events event.Events) []int64 {
	out := make([]int64, 0, len(x.conds))
	for _, e := range events {
		if conv.HasBit(e.Conditions, x.conds[len(out)]) {
			out = append(out, e.TimestampUs)
			if len(out) == len(x.conds) {
				return out
			}
		}
	}
	return nil
}
