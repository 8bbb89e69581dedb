package event

import "math"

// MicrosPerSecond is the tick size of every timestamp and interval in
// this module. Time is opaque microseconds-since-epoch; the host hands
// intervals pre-normalized to the same unit.
const MicrosPerSecond = 1_000_000

// SecondsUs converts whole seconds to microseconds, saturating instead
// of wrapping so interval arithmetic never produces a wrong-signed
// comparison.
func SecondsUs(s int64) int64 {
	if s > math.MaxInt64/MicrosPerSecond {
		return math.MaxInt64
	}
	if s < math.MinInt64/MicrosPerSecond {
		return math.MinInt64
	}
	return s * MicrosPerSecond
}
