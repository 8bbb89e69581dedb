package event

import "sort"

// Events is an append-order buffer of Event values collected by an
// operator's Update/Combine and turned into a timestamp-ordered slice
// by Finalize. It grows by ordinary amortized-doubling append; there
// is no custom arena.
type Events []Event

// Append adds one row, skipping NULL timestamps. A NULL conditions
// value must already have been coerced to 0 by the caller before this
// is invoked.
func (e *Events) Append(timestampUs int64, conditions uint32, tsIsNull bool) {
	if tsIsNull {
		return
	}
	*e = append(*e, New(timestampUs, conditions))
}

// AppendFrom merges another buffer's rows in, used by Combine.
func (e *Events) AppendFrom(other Events) {
	*e = append(*e, other...)
}

// IsSorted reports whether the buffer is already in non-decreasing
// timestamp order. This is an O(n) pass that lets Finalize skip the
// O(n log n) sort entirely when the host delivers rows under an
// `ORDER BY ts`, which is the common case in practice.
func (e Events) IsSorted() bool {
	for i := 1; i < len(e); i++ {
		if e[i-1].TimestampUs > e[i].TimestampUs {
			return false
		}
	}
	return true
}

// SortIfNeeded sorts the buffer by timestamp in place, skipping the
// sort when IsSorted already holds. The sort is unstable: no scanner
// in this module depends on the relative order of equal-timestamp
// events surviving the sort, so there is no reason to pay for
// stability.
func (e Events) SortIfNeeded() {
	if e.IsSorted() {
		return
	}
	sort.Slice(e, func(i, j int) bool {
		return e[i].TimestampUs < e[j].TimestampUs
	})
}

// NextNodeEvents is the analogous buffer for sequence-next-node, which
// carries a value column alongside timestamp and conditions.
type NextNodeEvents []NextNodeEvent

// Append adds one row, skipping NULL timestamps. value may be NullValue.
func (e *NextNodeEvents) Append(timestampUs int64, conditions uint32, value Value, tsIsNull bool) {
	if tsIsNull {
		return
	}
	*e = append(*e, NextNodeEvent{TimestampUs: timestampUs, Conditions: conditions, Value: value})
}

// AppendFrom merges another buffer's rows in, used by Combine.
func (e *NextNodeEvents) AppendFrom(other NextNodeEvents) {
	*e = append(*e, other...)
}

// IsSorted reports whether the buffer is already in non-decreasing
// timestamp order.
func (e NextNodeEvents) IsSorted() bool {
	for i := 1; i < len(e); i++ {
		if e[i-1].TimestampUs > e[i].TimestampUs {
			return false
		}
	}
	return true
}

// SortIfNeeded sorts the buffer by timestamp in place, skipping the
// sort when already sorted.
func (e NextNodeEvents) SortIfNeeded() {
	if e.IsSorted() {
		return
	}
	sort.Slice(e, func(i, j int) bool {
		return e[i].TimestampUs < e[j].TimestampUs
	})
}
