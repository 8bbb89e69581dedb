package nfa

import (
	"math/rand/v2"
	"testing"

	"github.com/coregx/behavioral/event"
	"github.com/coregx/behavioral/pattern"
)

// nfaMatch forces the backtracking interpreter, bypassing the shape
// dispatch, so the fast paths can be checked against it on the same
// inputs; countNFA and matchEventsNFA are called directly for the same
// purpose.
func nfaMatch(x *Executor, events event.Events) bool {
	ok, _ := x.search(events, 0, false)
	return ok
}

func randomEvents(rng *rand.Rand, n, bits int) event.Events {
	mask := uint32(1)<<uint32(bits) - 1
	out := make(event.Events, 0, n)
	ts := int64(0)
	for i := 0; i < n; i++ {
		ts += rng.Int64N(3 * event.MicrosPerSecond)
		out = append(out, event.New(ts, rng.Uint32()&mask))
	}
	return out
}

// The fast paths exist purely as performance specializations: on any
// input they must agree exactly with the interpreter they replace.
func TestFastPathsAgreeWithInterpreter(t *testing.T) {
	patterns := []string{
		"(?1)",
		"(?2)",
		"(?1)(?2)",
		"(?1)(?2)(?3)",
		"(?1).*(?2)",
		"(?1).*(?2).*(?3)",
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for _, src := range patterns {
		p := pattern.MustCompile(src, 3)
		if p.Shape() == pattern.ShapeComplex {
			t.Fatalf("pattern %q unexpectedly classified Complex", src)
		}
		x := New(p)
		for trial := 0; trial < 50; trial++ {
			events := randomEvents(rng, 1+rng.IntN(60), 3)

			if fast, slow := x.Match(events), nfaMatch(x, events); fast != slow {
				t.Fatalf("%q Match: fast=%v interpreter=%v on %d events", src, fast, slow, len(events))
			}
			if fast, slow := x.Count(events), x.countNFA(events); fast != slow {
				t.Fatalf("%q Count: fast=%d interpreter=%d on %d events", src, fast, slow, len(events))
			}
			fast := x.MatchEvents(events)
			slow := x.matchEventsNFA(events)
			if len(fast) != len(slow) {
				t.Fatalf("%q MatchEvents: fast=%v interpreter=%v", src, fast, slow)
			}
			for i := range fast {
				if fast[i] != slow[i] {
					t.Fatalf("%q MatchEvents[%d]: fast=%d interpreter=%d", src, i, fast[i], slow[i])
				}
			}
		}
	}
}

func TestAdjacentSlidingWindow(t *testing.T) {
	x := New(pattern.MustCompile("(?1)(?2)(?3)", 3))
	events := evs(
		[2]int64{0, c1}, [2]int64{1, c3}, [2]int64{2, c1},
		[2]int64{3, c2}, [2]int64{4, c3},
	)
	if !x.Match(events) {
		t.Fatal("expected adjacent triple at positions 2..4")
	}
	got := x.MatchEvents(events)
	want := []int64{2, 3, 4}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("MatchEvents = %v, want %v", got, want)
	}
}

func TestWildcardSeparatedSinglePass(t *testing.T) {
	x := New(pattern.MustCompile("(?1).*(?2).*(?3)", 3))
	if !x.Match(evs(
		[2]int64{0, c1}, [2]int64{1, 0}, [2]int64{2, c2},
		[2]int64{3, c1}, [2]int64{4, c3},
	)) {
		t.Fatal("expected wildcard-separated chain c1..c2..c3")
	}
	// Each condition must consume its own event.
	if x.Match(evs([2]int64{0, c1 | c2 | c3})) {
		t.Fatal("one event must not satisfy three chained conditions")
	}
}

// A .*-heavy pattern over a large input must complete without the
// quadratic blowup a greedy wildcard would cause; the lazy interpreter
// commits to the earliest viable continuation.
func TestLazyWildcardScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scale test in short mode")
	}
	p := pattern.MustCompile("(?1).*(?2).*(?3).", 3)
	if p.Shape() != pattern.ShapeComplex {
		t.Fatalf("want Complex shape to force the interpreter, got %v", p.Shape())
	}
	x := New(p)
	n := 20000
	events := make(event.Events, 0, n)
	for i := 0; i < n; i++ {
		mask := uint32(c2)
		if i == 0 {
			mask = c1
		}
		if i == n-2 {
			mask = c3
		}
		events = append(events, event.New(int64(i), mask))
	}
	if !x.Match(events) {
		t.Fatal("expected match at the tail of the stream")
	}
}
