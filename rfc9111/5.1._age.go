package rfc9111

import (
	"net/http"
	"strconv"
	"time"

	"github.com/always-cache/ccfield/rfc9110"
)

// §  5.1.  Age
// §
// §     The "Age" response header field conveys the sender's estimate of the
// §     time since the response was generated or successfully validated at
// §     the origin server.  Age values are calculated as specified in
// §     Section 4.2.3.
// §
// §       Age = delta-seconds
// §
// §     The Age field value is a non-negative integer, representing time in
// §     seconds (see Section 1.2.2).

// Age is the value of the Age response header field, in seconds.
type Age uint64

// §     Although it is defined as a singleton header field, a cache
// §     encountering a message with a list-based Age field value SHOULD use
// §     the first member of the field value, discarding subsequent ones.
// §
// §     If the field value (after discarding additional members, as per
// §     above) is invalid (e.g., it contains something other than a non-
// §     negative integer), a cache SHOULD ignore the field.

// ParseAge returns the first member of the Age field lines that is a valid
// delta-seconds. Invalid members are skipped and members after the first
// valid one are not looked at. The boolean is false if no member is valid,
// in which case the field is to be ignored.
func ParseAge(values []string) (Age, bool) {
	return DecodeAge(values)
}

// DecodeAge is ParseAge for field values of any octet type.
func DecodeAge[S rfc9110.Octets](values []S) (Age, bool) {
	seconds, ok := rfc9110.FirstListMember(values, ParseDeltaSeconds)
	return Age(seconds), ok
}

// AgeFromHeader reads the Age field of h.
func AgeFromHeader(h http.Header) (Age, bool) {
	return ParseAge(h[fieldAge])
}

// AgeFromDuration truncates d to whole seconds.
func AgeFromDuration(d time.Duration) Age {
	return Age(durationToDeltaSeconds(d))
}

func (Age) FieldName() string { return fieldAge }

func (a Age) Duration() time.Duration { return DeltaSecondsDuration(uint64(a)) }

func (a Age) String() string { return strconv.FormatUint(uint64(a), 10) }

// Encode sets the Age field of h to a single member.
func (a Age) Encode(h http.Header) {
	h[fieldAge] = []string{a.String()}
}
