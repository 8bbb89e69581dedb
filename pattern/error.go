package pattern

import "fmt"

// SyntaxError reports a malformed pattern string: an unparseable step,
// an out-of-range condition index, an unknown time-comparison
// operator, or two consecutive TimeConstraint steps.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern syntax error at byte %d of %q: %s", e.Pos, e.Pattern, e.Msg)
}

// newSyntaxError is a small constructor used throughout the parser so
// every failure carries the pattern string and the byte offset where
// parsing stopped making sense.
func newSyntaxError(pattern string, pos int, msg string) error {
	return &SyntaxError{Pattern: pattern, Pos: pos, Msg: msg}
}
