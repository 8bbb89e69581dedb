// Package pattern compiles the event-sequence pattern grammar:
//
//	pattern := step+
//	step    := '(?' (int | 't' op int) ')' | '.*' | '.'
//	op      := '==' | '!=' | '<=' | '>=' | '<' | '>'
//
// into a linear sequence of typed steps, and classifies the compiled
// form so the executor (package pattern/nfa) can dispatch to the
// cheapest scanner that can handle it. Compile once, classify once,
// execute many times: a *Pattern is safe to share across every state
// in a query that uses the same pattern string, and compilation
// happens once per distinct pattern rather than once per row.
package pattern

import "fmt"

// StepKind tags the kind of a compiled pattern step.
type StepKind uint8

const (
	// StepCondition consumes one event whose bitmask has the given
	// condition bit set; backtrack otherwise.
	StepCondition StepKind = iota
	// StepAnyEvents is '.*': lazily consumes zero or more events,
	// preferring to advance the remainder of the pattern first.
	StepAnyEvents
	// StepOneEvent is '.': consumes exactly one event, unconditionally.
	StepOneEvent
	// StepTimeConstraint succeeds iff the elapsed time (in whole
	// seconds, truncated toward zero) between the previously matched
	// Condition step and the current event satisfies op relative to
	// threshold. It consumes no event.
	StepTimeConstraint
)

func (k StepKind) String() string {
	switch k {
	case StepCondition:
		return "Condition"
	case StepAnyEvents:
		return "AnyEvents"
	case StepOneEvent:
		return "OneEvent"
	case StepTimeConstraint:
		return "TimeConstraint"
	default:
		return fmt.Sprintf("StepKind(%d)", k)
	}
}

// TimeOp is one of the six comparison operators a TimeConstraint step
// may use.
type TimeOp uint8

const (
	OpEq TimeOp = iota
	OpNe
	OpLe
	OpGe
	OpLt
	OpGt
)

func (op TimeOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	default:
		return "?"
	}
}

// Eval reports whether elapsedSeconds op threshold holds.
func (op TimeOp) Eval(elapsedSeconds, threshold int64) bool {
	switch op {
	case OpEq:
		return elapsedSeconds == threshold
	case OpNe:
		return elapsedSeconds != threshold
	case OpLe:
		return elapsedSeconds <= threshold
	case OpGe:
		return elapsedSeconds >= threshold
	case OpLt:
		return elapsedSeconds < threshold
	case OpGt:
		return elapsedSeconds > threshold
	default:
		return false
	}
}

// Step is one instruction of a compiled pattern.
type Step struct {
	Kind StepKind

	// Condition: 1-based bit index. Valid only when Kind == StepCondition.
	Condition int

	// TimeConstraint: comparison operator and integer-second threshold.
	// Valid only when Kind == StepTimeConstraint.
	Op        TimeOp
	Threshold int64
}

// Pattern is a compiled, validated pattern: a linear step sequence plus
// its pre-computed Shape (see Classify). Compile once per distinct
// pattern string; a *Pattern is immutable after Compile returns and
// safe to share, unsynchronized, across any number of states that were
// configured with the same pattern string.
type Pattern struct {
	source string
	steps  []Step
	shape  Shape
}

// Source returns the original pattern string.
func (p *Pattern) Source() string { return p.source }

// Steps returns the compiled step sequence. The returned slice must
// not be mutated.
func (p *Pattern) Steps() []Step { return p.steps }

// Shape returns the pre-computed classification used to pick an
// executor fast path.
func (p *Pattern) Shape() Shape { return p.shape }

// Compile parses and validates pattern against numConditions (the
// arity the host registered this operator instance with), returning a
// *Pattern ready for repeated execution, or a *SyntaxError.
//
// Validation: every Condition(i) step must satisfy
// 1 <= i <= numConditions, and no two TimeConstraint steps may appear
// consecutively.
func Compile(patternStr string, numConditions int) (*Pattern, error) {
	steps, err := parse(patternStr)
	if err != nil {
		return nil, err
	}
	if err := validate(patternStr, steps, numConditions); err != nil {
		return nil, err
	}
	return &Pattern{
		source: patternStr,
		steps:  steps,
		shape:  Classify(steps),
	}, nil
}

// MustCompile is like Compile but panics on error; intended for
// compile-time-known patterns (tests, fixtures), not user input.
func MustCompile(patternStr string, numConditions int) *Pattern {
	p, err := Compile(patternStr, numConditions)
	if err != nil {
		panic("pattern: Compile(" + patternStr + "): " + err.Error())
	}
	return p
}

func validate(patternStr string, steps []Step, numConditions int) error {
	if len(steps) == 0 {
		return newSyntaxError(patternStr, 0, "pattern must contain at least one step")
	}
	prevWasTimeConstraint := false
	pos := 0 // byte offset of the current step in patternStr
	for _, s := range steps {
		switch s.Kind {
		case StepCondition:
			if s.Condition < 1 || s.Condition > numConditions {
				return newSyntaxError(patternStr, pos,
					fmt.Sprintf("condition index %d out of range [1, %d]", s.Condition, numConditions))
			}
			prevWasTimeConstraint = false
		case StepTimeConstraint:
			if prevWasTimeConstraint {
				return newSyntaxError(patternStr, pos, "consecutive time constraints are not allowed")
			}
			prevWasTimeConstraint = true
		default:
			prevWasTimeConstraint = false
		}
		// patternStr already parsed cleanly, so re-scanning a step
		// cannot fail; it only yields the next step's offset.
		_, pos, _ = parseStep(patternStr, pos)
	}
	return nil
}
