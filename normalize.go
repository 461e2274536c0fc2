package ccfield

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/always-cache/ccfield/recorder"
	"github.com/always-cache/ccfield/rfc9110"
	"github.com/always-cache/ccfield/rfc9111"
)

// Caching fields in the order they are observed.
var fields = []string{"Cache-Control", "Age", "Expires"}

// normalizeHeader decodes the caching fields present in h. With rewrite set,
// valid fields are replaced by their canonical value; an invalid Age is
// removed since a cache has to ignore it anyway. Other invalid fields are
// passed on as received.
func normalizeHeader(h http.Header, rewrite bool) []recorder.Observation {
	observations := make([]recorder.Observation, 0, len(fields))
	for _, name := range fields {
		values, ok := h[name]
		if !ok {
			continue
		}
		o := recorder.Observation{Field: name, Raw: slices.Clone(values)}
		var field rfc9111.Field
		switch name {
		case "Cache-Control":
			cc, err := rfc9111.ParseCacheControl(values)
			if err != nil {
				o.Error = err.Error()
				break
			}
			field = cc
		case "Age":
			age, ok := rfc9111.ParseAge(values)
			if !ok {
				o.Error = fmt.Sprintf("%s: %v: no delta-seconds member", name, rfc9110.ErrInvalidSyntax)
				if rewrite {
					delete(h, name)
				}
				break
			}
			field = age
		case "Expires":
			exp, err := rfc9111.ParseExpires(values)
			if err != nil {
				o.Error = err.Error()
				break
			}
			field = exp
		}
		if field != nil {
			o.Canonical = canonicalValue(field)
			if rewrite {
				field.Encode(h)
			}
		}
		observations = append(observations, o)
	}
	return observations
}

// canonicalValue encodes field without touching the response.
func canonicalValue(field rfc9111.Field) string {
	h := make(http.Header, 1)
	field.Encode(h)
	return h.Get(field.FieldName())
}
