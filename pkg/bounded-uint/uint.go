// Package boundeduint parses runs of ASCII digits into unsigned integers of a
// fixed width, with a selectable policy for values that do not fit.
package boundeduint

import "math"

// Error is a string type that implements the error interface.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidSyntax is returned for empty input or input containing anything but 0-9.
	ErrInvalidSyntax Error = "invalid syntax"
	// ErrOverflow is returned by the Checked policy when the value does not fit the target width.
	ErrOverflow Error = "value out of range"
)

// Policy selects what happens when the parsed value exceeds the target width.
type Policy int

const (
	// Saturating clamps the result to the maximum value of the target width.
	// It never returns ErrOverflow.
	Saturating Policy = iota
	// Checked fails with ErrOverflow as soon as the value stops fitting.
	Checked
)

func (p Policy) String() string {
	switch p {
	case Saturating:
		return "saturating"
	case Checked:
		return "checked"
	}
	return "unknown"
}

// Unsigned is the set of integer types ParseUint can produce.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Number of leading digits that can be accumulated without any overflow check.
const (
	safeDigits8  = 2
	safeDigits16 = 4
	safeDigits32 = 9
	safeDigits64 = 19
)

func safeDigits[T Unsigned]() int {
	switch uint64(^T(0)) {
	case math.MaxUint8:
		return safeDigits8
	case math.MaxUint16:
		return safeDigits16
	case math.MaxUint32:
		return safeDigits32
	}
	return safeDigits64
}

// ParseUint parses b as a base 10 unsigned integer.
// Leading zeros are permitted, signs and whitespace are not.
//
// Under the Saturating policy all digits are still validated after the value
// has been clamped, so a single non-digit anywhere fails the whole parse.
func ParseUint[T Unsigned](b []byte, policy Policy) (T, error) {
	if len(b) == 0 {
		return 0, ErrInvalidSyntax
	}

	safe := min(safeDigits[T](), len(b))
	var n T
	for _, c := range b[:safe] {
		if c < '0' || c > '9' {
			return 0, ErrInvalidSyntax
		}
		n = n*10 + T(c-'0')
	}

	const base = 10
	maxVal := ^T(0)
	for _, c := range b[safe:] {
		if c < '0' || c > '9' {
			return 0, ErrInvalidSyntax
		}
		d := T(c - '0')
		if n > maxVal/base || (n == maxVal/base && d > maxVal%base) {
			if policy == Checked {
				return 0, ErrOverflow
			}
			n = maxVal
			continue
		}
		n = n*base + d
	}
	return n, nil
}

// ParseUint8 parses an 8-bit value.
func ParseUint8(b []byte, policy Policy) (uint8, error) {
	return ParseUint[uint8](b, policy)
}

// ParseUint16 parses a 16-bit value.
func ParseUint16(b []byte, policy Policy) (uint16, error) {
	return ParseUint[uint16](b, policy)
}

// ParseUint32 parses a 32-bit value.
func ParseUint32(b []byte, policy Policy) (uint32, error) {
	return ParseUint[uint32](b, policy)
}

// ParseUint64 parses a 64-bit value, the width of delta-seconds.
func ParseUint64(b []byte, policy Policy) (uint64, error) {
	return ParseUint[uint64](b, policy)
}
