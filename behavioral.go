// Package behavioral is the façade over the behavioral-analytics
// operator family: sessionization, cohort retention, window funnels,
// event-sequence pattern matching, and sequence-next-node.
//
// Each operator is a concrete state machine living in its own package
// (sessionize, retention, funnel, sequence, nextnode), driven by the
// host through the same four-step lifecycle: build or zero-initialize
// a state, Update it with rows, Combine partial states pairwise, and
// Finalize once per output row. Combine is associative for every
// operator, which is what lets a segment-tree windowing host merge
// partials in any topology.
//
// The constructors here validate user-facing configuration — pattern
// strings, funnel mode strings, condition arity — and return the
// operator package's state, so a host binding has a single import for
// the whole family.
package behavioral

import (
	"github.com/coregx/behavioral/funnel"
	"github.com/coregx/behavioral/internal/conv"
	"github.com/coregx/behavioral/nextnode"
	"github.com/coregx/behavioral/retention"
	"github.com/coregx/behavioral/sequence"
	"github.com/coregx/behavioral/sessionize"
)

// ErrConfigMismatch is the panic value raised when two partial states
// with conflicting configuration are combined. That is a host bug, not
// user input; see the combine discipline documented on each operator's
// State.
var ErrConfigMismatch = conv.ErrConfigMismatch

// Sessionize returns a session-boundary counting state: a new session
// begins when the gap between consecutive timestamps strictly exceeds
// gapUs.
func Sessionize(gapUs int64) *sessionize.State {
	return sessionize.NewState(gapUs)
}

// Retention returns a cohort-retention state over numConditions slots.
func Retention(numConditions int) (*retention.State, error) {
	return retention.New(numConditions)
}

// WindowFunnel parses the comma-separated mode string and returns a
// funnel state over numConditions ordered steps within a windowUs
// sliding window.
func WindowFunnel(windowUs int64, modes string, numConditions int) (*funnel.State, error) {
	m, err := funnel.ParseModes(modes)
	if err != nil {
		return nil, err
	}
	return funnel.NewState(windowUs, m, numConditions)
}

// Sequence compiles patternStr against numConditions and returns a
// configured sequence state. The caller picks the variant at finalize
// time: FinalizeMatch, FinalizeCount, or FinalizeMatchEvents.
func Sequence(patternStr string, numConditions int) (*sequence.State, error) {
	s := sequence.NewState()
	if err := s.Configure(patternStr, numConditions); err != nil {
		return nil, err
	}
	return s, nil
}

// SequenceNextNode returns a sequence-next-node state for m prefix
// conditions traversed in the given direction from the given anchor.
func SequenceNextNode(direction nextnode.Direction, anchor nextnode.Anchor, numPrefix int) (*nextnode.State, error) {
	return nextnode.NewState(direction, anchor, numPrefix)
}
