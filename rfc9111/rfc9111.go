// Package rfc9111 decodes and encodes the header fields defined by
// RFC 9111 (HTTP Caching): Cache-Control, Age and Expires.
// It models the syntax of the field values only and makes no caching decisions.
package rfc9111

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/always-cache/ccfield/rfc9110"
)

const (
	fieldAge          = "Age"
	fieldCacheControl = "Cache-Control"
	fieldExpires      = "Expires"
)

// Field is a typed header field value.
type Field interface {
	// FieldName is the header name the value is read from and written to.
	FieldName() string
	// Encode writes the value to h, or removes the field if there is nothing to send.
	Encode(h http.Header)
}

var (
	_ Field = CacheControl{}
	_ Field = Age(0)
	_ Field = Expires{}
)

func (CacheControl) FieldName() string { return fieldCacheControl }

// CacheControlFromHeader decodes the Cache-Control lines of h. The boolean
// is false when the field is absent or holds no directive.
// Names are looked up as given; h is expected to use canonical keys.
func CacheControlFromHeader(h http.Header) (CacheControl, bool, error) {
	values, ok := h[fieldCacheControl]
	if !ok {
		return CacheControl{}, false, nil
	}
	cc, err := ParseCacheControl(values)
	if err != nil {
		return CacheControl{}, false, err
	}
	return cc, !cc.IsEmpty(), nil
}

func errNotA(name, what string) error {
	return fmt.Errorf("%w: %q is not a %s", rfc9110.ErrInvalidSyntax, name, what)
}

// withField names the field in a *rfc9110.SyntaxError.
func withField(err error, field string) error {
	var se *rfc9110.SyntaxError
	if errors.As(err, &se) {
		return &rfc9110.SyntaxError{Field: field, Pos: se.Pos, Err: se.Err}
	}
	return err
}
