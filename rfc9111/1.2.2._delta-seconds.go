package rfc9111

import (
	"math"
	"time"

	boundeduint "github.com/always-cache/ccfield/pkg/bounded-uint"
)

// §  1.2.2. Delta Seconds
// §
// §  The delta-seconds rule specifies a non-negative integer, representing time
// §  in seconds.
// §
// §      delta-seconds  = 1*DIGIT
// §
// §  A recipient parsing a delta-seconds value and converting it to binary form
// §  ought to use an arithmetic type of at least 31 bits of non-negative integer
// §  range. If a cache receives a delta-seconds value greater than the greatest
// §  integer it can represent, or if any of its subsequent calculations overflows,
// §  the cache MUST consider the value to be 2147483648 (231) or the greatest
// §  positive integer it can conveniently represent.
// §
// §        |  *Note:* The value 2147483648 is here for historical reasons,
// §        |  represents infinity (over 68 years), and does not need to be
// §        |  stored in binary form; an implementation could produce it as a
// §        |  string if any overflow occurs, even if the calculations are
// §        |  performed with an arithmetic type incapable of directly
// §        |  representing that number.  What matters here is that an
// §        |  overflow be detected and not treated as a negative value in
// §        |  later calculations.

// ParseDeltaSeconds parses a delta-seconds value. Values beyond the uint64
// range become math.MaxUint64.
func ParseDeltaSeconds(b []byte) (uint64, error) {
	return boundeduint.ParseUint64(b, boundeduint.Saturating)
}

const maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))

// DeltaSecondsDuration converts seconds to a time.Duration, clamping at the
// largest representable duration.
func DeltaSecondsDuration(seconds uint64) time.Duration {
	if seconds > maxDurationSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

// durationToDeltaSeconds truncates d to whole seconds. Negative durations are 0.
func durationToDeltaSeconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Second)
}
