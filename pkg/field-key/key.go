package fieldkey

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	originSeparator = ":"
	methodSeparator = ":"
	fieldSeparator  = "\t"
)

// Keyer builds the keys observations are stored under:
//
//	origin:METHOD:request-uri<TAB>field-name
type Keyer struct {
	// Unique identifier for the origin.
	// Usually this should be the origin - well - origin.
	OriginId string
	// Key prefix for this origin
	OriginPrefix string
}

func NewKeyer(originId string) Keyer {
	return Keyer{
		OriginId:     originId,
		OriginPrefix: originId + originSeparator,
	}
}

// MethodPrefix gets the key prefix for the origin with the given method.
func (k Keyer) MethodPrefix(method string) string {
	return k.OriginPrefix + method + methodSeparator
}

// KeyPrefix returns the prefix shared by the keys of all fields of a request.
func (k Keyer) KeyPrefix(r *http.Request) string {
	return k.MethodPrefix(r.Method) + r.URL.RequestURI() + fieldSeparator
}

// Key returns the key for one field of the response to r.
func (k Keyer) Key(r *http.Request, field string) string {
	return k.KeyPrefix(r) + field
}

// Parse splits a key into its method, request URI and field name.
// It returns an error if the key does not belong to this origin.
func (k Keyer) Parse(key string) (method, uri, field string, err error) {
	rest, ok := strings.CutPrefix(key, k.OriginPrefix)
	if !ok {
		return "", "", "", fmt.Errorf("Key and origin do not match")
	}
	rest, field, ok = strings.Cut(rest, fieldSeparator)
	if !ok {
		return "", "", "", fmt.Errorf("Malformed key: %s", key)
	}
	method, uri, ok = strings.Cut(rest, methodSeparator)
	if !ok {
		return "", "", "", fmt.Errorf("Malformed key: %s", key)
	}
	return method, uri, field, nil
}
