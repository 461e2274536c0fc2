package rfc9110

import (
	"fmt"
	"strings"
	"time"
)

// §  5.6.7.  Date/Time Formats
// §
// §     Prior to 1995, there were three different formats commonly used by
// §     servers to communicate timestamps.  For compatibility with old
// §     implementations, all three are defined here.  The preferred format is
// §     a fixed-length and single-zone subset of the date and time
// §     specification used by the Internet Message Format [RFC5322].
// §
// §       HTTP-date    = IMF-fixdate / obs-date
// §
// §     An example of the preferred format is
// §
// §       Sun, 06 Nov 1994 08:49:37 GMT    ; IMF-fixdate
// §
// §     Examples of the two obsolete formats are
// §
// §       Sunday, 06-Nov-94 08:49:37 GMT   ; obsolete RFC 850 format
// §       Sun Nov  6 08:49:37 1994         ; ANSI C's asctime() format
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.  When a sender generates a field
// §     that contains one or more timestamps defined as HTTP-date, the sender
// §     MUST generate those timestamps in the IMF-fixdate format.
// §
// §     HTTP-date is case sensitive.  Note that Section 4.2 of [CACHING]
// §     relaxes this for cache recipients.

const (
	imfFixdateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
	rfc850Layout     = "Monday, 02-Jan-06 15:04:05 GMT"
	asctimeLayout    = "Mon Jan _2 15:04:05 2006"
)

// ParseHTTPDate parses any of the three HTTP-date formats. Names and the GMT
// zone are matched case-insensitively, and the day name has to agree with
// the date.
func ParseHTTPDate(s string) (time.Time, error) {
	str := strings.ToUpper(s)
	for _, layout := range []string{imfFixdateLayout, rfc850Layout, asctimeLayout} {
		date, err := time.Parse(layout, str)
		if err != nil {
			continue
		}
		if layout == rfc850Layout {
			date = fixTwoDigitYear(date)
		}
		// time.Parse ignores the day name, formatting back catches a mismatch
		if !strings.EqualFold(date.Format(layout), s) {
			return time.Time{}, fmt.Errorf("%w: %q does not name the right day", ErrInvalidSyntax, s)
		}
		return date, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an HTTP-date", ErrInvalidSyntax, s)
}

// §     Recipients of a timestamp value in rfc850-date format, which uses a
// §     two-digit year, MUST interpret a timestamp that appears to be more
// §     than 50 years in the future as representing the most recent year in
// §     the past that had the same last two digits.
//
// Years 70-99 are read as 19xx and 00-69 as 20xx.
func fixTwoDigitYear(date time.Time) time.Time {
	if date.Year() < 1970 {
		return date.AddDate(100, 0, 0)
	}
	return date
}

// FormatHTTPDate renders t as an IMF-fixdate.
func FormatHTTPDate(t time.Time) string {
	return t.UTC().Format(imfFixdateLayout)
}
