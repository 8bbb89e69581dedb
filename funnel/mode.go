package funnel

import (
	"fmt"
	"strings"
)

// Mode is a bitflag set of scan-tightening rules. Modes compose
// independently; the scan honors the intersection of their individual
// rules.
type Mode uint32

const (
	// Strict resets an entry when the last matched condition fires
	// again before the next one does.
	Strict Mode = 1 << iota
	// StrictOrder invalidates a scan when any already-matched
	// condition fires between matched steps.
	StrictOrder
	// StrictDeduplication skips events whose timestamp equals the
	// last matched step's timestamp.
	StrictDeduplication
	// StrictIncrease requires a strictly greater timestamp between
	// consecutive matched steps.
	StrictIncrease
	// StrictOnce lets an event advance at most one step, disabling
	// the multi-advance inner loop.
	StrictOnce
	// AllowReentry resets the window origin when condition 1 fires
	// again mid-scan.
	AllowReentry
)

// Has reports whether flag is set in m.
func (m Mode) Has(flag Mode) bool {
	return m&flag != 0
}

// ModeError reports an unknown token in a funnel mode string.
type ModeError struct {
	Token string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("funnel: unknown mode token %q", e.Token)
}

// ParseModes parses a comma-separated mode string. Tokens are
// case-insensitive and whitespace-tolerant; empty tokens are ignored,
// so "" and "strict, strict_order" are both valid. An unknown token is
// a *ModeError.
func ParseModes(s string) (Mode, error) {
	var m Mode
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch tok {
		case "":
			// tolerate "a,,b" and trailing commas
		case "strict":
			m |= Strict
		case "strict_order":
			m |= StrictOrder
		case "strict_deduplication":
			m |= StrictDeduplication
		case "strict_increase":
			m |= StrictIncrease
		case "strict_once":
			m |= StrictOnce
		case "allow_reentry":
			m |= AllowReentry
		default:
			return 0, &ModeError{Token: tok}
		}
	}
	return m, nil
}
