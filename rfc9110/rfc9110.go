// Package rfc9110 implements the shared grammar of HTTP field values from
// RFC 9110 (HTTP Semantics) section 5.6: tokens, whitespace, quoted strings,
// lists and HTTP dates.
package rfc9110

import (
	"fmt"

	boundeduint "github.com/always-cache/ccfield/pkg/bounded-uint"
)

const (
	ErrInvalidSyntax = boundeduint.ErrInvalidSyntax
	ErrOverflow      = boundeduint.ErrOverflow
)

// SyntaxError reports where in a field value decoding failed.
type SyntaxError struct {
	// Field is the field name, if known.
	Field string
	// Pos is the byte offset into the field value.
	Pos int
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
	}
	return fmt.Sprintf("%s: %v at offset %d", e.Field, e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// NewSyntaxError returns a *SyntaxError wrapping ErrInvalidSyntax.
func NewSyntaxError(field string, pos int) *SyntaxError {
	return &SyntaxError{Field: field, Pos: pos, Err: ErrInvalidSyntax}
}

// Octets is a field value as it comes out of a message: text or raw bytes.
type Octets interface {
	~string | ~[]byte
}
