package rfc9111

import (
	"fmt"
	"net/http"
	"time"

	"braces.dev/errtrace"

	"github.com/always-cache/ccfield/rfc9110"
)

// §  5.3.  Expires
// §
// §     The "Expires" response header field gives the date/time after which
// §     the response is considered stale.  See Section 4.2 for further
// §     discussion of the freshness model.
// §
// §     The Expires field value is an HTTP-date timestamp, as defined in
// §     Section 5.6.7 of [HTTP].  See also Section 4.2 for parsing
// §     requirements specific to caches.
// §
// §       Expires = HTTP-date
// §
// §     For example
// §
// §     Expires: Thu, 01 Dec 1994 16:00:00 GMT
// §
// §     A cache recipient MUST interpret invalid date formats, especially the
// §     value "0", as representing a time in the past (i.e., "already
// §     expired").

// Expires is the value of the Expires response header field.
type Expires struct {
	time.Time
}

// ParseExpires decodes the Expires field lines. Expires is not a list, so
// anything but exactly one line holding an HTTP-date is invalid.
// Treating an invalid value as already expired is up to the caller.
func ParseExpires(values []string) (Expires, error) {
	if len(values) != 1 {
		return Expires{}, errtrace.Wrap(fmt.Errorf("%s: %w: %d field lines", fieldExpires, rfc9110.ErrInvalidSyntax, len(values)))
	}
	t, err := rfc9110.ParseHTTPDate(values[0])
	if err != nil {
		return Expires{}, errtrace.Wrap(fmt.Errorf("%s: %w", fieldExpires, err))
	}
	return Expires{t}, nil
}

// ExpiresFromHeader reads the Expires field of h. The boolean is false when
// the field is absent.
func ExpiresFromHeader(h http.Header) (Expires, bool, error) {
	values, ok := h[fieldExpires]
	if !ok {
		return Expires{}, false, nil
	}
	exp, err := ParseExpires(values)
	if err != nil {
		return Expires{}, true, err
	}
	return exp, true, nil
}

func (Expires) FieldName() string { return fieldExpires }

// String formats the time as an IMF-fixdate.
func (e Expires) String() string { return rfc9110.FormatHTTPDate(e.Time) }

// Encode sets the Expires field of h.
func (e Expires) Encode(h http.Header) {
	h[fieldExpires] = []string{e.String()}
}
