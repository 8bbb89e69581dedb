// Package proptest provides the generic law-checking harness shared by
// the operator test suites: associativity, identity and (for operators
// whose combine commutes) commutativity of combine. It exists
// so the segment-tree merge contract is checked once, generically,
// instead of being reimplemented in every operator's tests.
package proptest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Aggregate is the one behavior every operator state shares: an
// in-place, mutating merge. It is the Go-level shape of the host's
// state_combine entry point.
type Aggregate[S any] interface {
	Combine(other S)
}

// CheckAssociative builds three partial states twice via mk and
// verifies that left-fold and right-fold merge orders finalize
// identically: finalize((A+B)+C) == finalize(A+(B+C)).
//
// mk must return freshly built states each call, since Combine
// mutates its target.
func CheckAssociative[S Aggregate[S]](t *testing.T, mk func() [3]S, finalize func(S) any) {
	t.Helper()
	l := mk()
	l[0].Combine(l[1])
	l[0].Combine(l[2])
	left := finalize(l[0])

	r := mk()
	r[1].Combine(r[2])
	r[0].Combine(r[1])
	right := finalize(r[0])

	require.Equal(t, left, right, "combine must be associative")
}

// CheckIdentity verifies that an empty state is the identity of
// combine on both sides: finalize(s+empty) == finalize(s) ==
// finalize(empty+s). empty must return a zero-initialized (possibly
// unconfigured) state, exercising the configuration-propagation rule
// for the left-identity case, where the empty state is the target.
func CheckIdentity[S Aggregate[S]](t *testing.T, mk func() S, empty func() S, finalize func(S) any) {
	t.Helper()
	base := finalize(mk())

	s := mk()
	s.Combine(empty())
	require.Equal(t, base, finalize(s), "empty must be a right identity of combine")

	e := empty()
	e.Combine(mk())
	require.Equal(t, base, finalize(e), "empty must be a left identity of combine")
}

// CheckCommutative verifies finalize(A+B) == finalize(B+A) for
// operators whose combine commutes (retention; sessionize over ordered
// ranges is checked by its own suite with the boundary-event caveat).
func CheckCommutative[S Aggregate[S]](t *testing.T, mk func() [2]S, finalize func(S) any) {
	t.Helper()
	ab := mk()
	ab[0].Combine(ab[1])
	ba := mk()
	ba[1].Combine(ba[0])
	require.Equal(t, finalize(ab[0]), finalize(ba[1]), "combine must be commutative")
}
