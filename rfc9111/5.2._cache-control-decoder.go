package rfc9111

import (
	"errors"

	"braces.dev/errtrace"

	"github.com/always-cache/ccfield/rfc9110"
)

type decodeState uint8

const (
	// at the start of the value or after a comma
	expectDirective decodeState = iota
	// a directive name was read
	haveDirective
	// a directive and its argument were read, a comma or the end must follow
	haveArgument
	done
)

// ParseCacheControl decodes all Cache-Control field lines of a message into
// one record, as if they had been joined with commas.
// Decoding is all-or-nothing: on error the zero record is returned.
// A value that only holds whitespace and commas decodes to an empty record.
func ParseCacheControl(values []string) (CacheControl, error) {
	return errtrace.Wrap2(DecodeCacheControl(values))
}

// DecodeCacheControl is ParseCacheControl for field values of any octet type.
// The record does not retain the input.
func DecodeCacheControl[S rfc9110.Octets](values []S) (CacheControl, error) {
	var cc CacheControl
	for _, value := range values {
		if err := cc.decode([]byte(value)); err != nil {
			return CacheControl{}, errtrace.Wrap(err)
		}
	}
	return cc, nil
}

// decode adds the directives of one field line to c.
func (c *CacheControl) decode(value []byte) error {
	lex := lexer{input: value}
	state := expectDirective
	var pending token
	for state != done {
		tok, err := lex.next()
		if err != nil {
			return err
		}
		switch state {
		case expectDirective:
			switch tok.kind {
			case tokenComma:
			case tokenDirective, tokenExtension:
				pending = tok
				state = haveDirective
			case tokenEnd:
				state = done
			default:
				return rfc9110.NewSyntaxError(fieldCacheControl, tok.start)
			}
		case haveDirective:
			switch tok.kind {
			case tokenEquals:
				arg, err := lex.argument()
				if err != nil {
					return err
				}
				if err := c.apply(value, pending, &arg); err != nil {
					return err
				}
				state = haveArgument
			case tokenComma:
				if err := c.apply(value, pending, nil); err != nil {
					return err
				}
				state = expectDirective
			case tokenEnd:
				if err := c.apply(value, pending, nil); err != nil {
					return err
				}
				state = done
			default:
				return rfc9110.NewSyntaxError(fieldCacheControl, tok.start)
			}
		case haveArgument:
			switch tok.kind {
			case tokenComma:
				state = expectDirective
			case tokenEnd:
				state = done
			default:
				return rfc9110.NewSyntaxError(fieldCacheControl, tok.start)
			}
		}
	}
	return nil
}

// apply stores a directive with its optional argument. Registered directives
// must be given an argument exactly when they define one.
func (c *CacheControl) apply(value []byte, tok token, arg *argument) error {
	if tok.kind == tokenExtension {
		c.extensions = append(c.extensions, newDecodedExtension(value[tok.start:tok.end], arg))
		return nil
	}
	d := tok.directive
	switch d.arg() {
	case argDeltaSeconds:
		if arg == nil {
			return rfc9110.NewSyntaxError(fieldCacheControl, tok.end)
		}
		// §  recipients ought to accept both forms, even if a specific form is
		// §  required for generation.
		seconds, err := ParseDeltaSeconds(arg.value())
		if err != nil {
			return &rfc9110.SyntaxError{Field: fieldCacheControl, Pos: arg.pos, Err: unwrapSentinel(err)}
		}
		c.setDeltaSeconds(d, seconds)
	case argFieldNames:
		if arg == nil {
			c.setFieldNames(d, nil)
			return nil
		}
		names, err := rfc9110.ParseFieldNameList(arg.value())
		if err != nil {
			return &rfc9110.SyntaxError{Field: fieldCacheControl, Pos: arg.pos, Err: unwrapSentinel(err)}
		}
		c.setFieldNames(d, names)
	default:
		if arg != nil {
			return rfc9110.NewSyntaxError(fieldCacheControl, tok.end)
		}
		c.setFlag(d)
	}
	return nil
}

func unwrapSentinel(err error) error {
	if errors.Is(err, rfc9110.ErrOverflow) {
		return rfc9110.ErrOverflow
	}
	return rfc9110.ErrInvalidSyntax
}
