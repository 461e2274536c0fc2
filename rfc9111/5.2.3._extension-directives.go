package rfc9111

import (
	"bytes"
	"fmt"

	"braces.dev/errtrace"

	"github.com/always-cache/ccfield/rfc9110"
)

// §  5.2.3.  Extension Directives
// §
// §     The Cache-Control header field can be extended through the use of one
// §     or more extension cache directives.  A cache MUST ignore unrecognized
// §     cache directives.
// §
// §     For example, consider a hypothetical new response directive called
// §     "community" that acts as a modifier to the private directive [...]
// §
// §     Cache-Control: private, community="UCI"

// Extension is a cache directive this package has no dedicated field for.
// It keeps the argument exactly as received so it can be forwarded unchanged.
type Extension struct {
	name string
	// argument with quoting removed
	value []byte
	// argument as it appears in the field value, nil if there is none
	raw []byte
}

// NewExtension creates an extension directive. A nil value means the
// directive has no argument; any other value is sent as a token when
// possible and as a quoted-string otherwise.
func NewExtension(name string, value []byte) (Extension, error) {
	if !rfc9110.IsToken(name) {
		return Extension{}, errtrace.Wrap(errNotA(name, "token"))
	}
	if IsRegistered(name) {
		return Extension{}, errtrace.Wrap(fmt.Errorf("%q is a registered directive", name))
	}
	ext := Extension{name: name}
	if value != nil {
		raw, err := rfc9110.QuoteIfNeeded(value)
		if err != nil {
			return Extension{}, errtrace.Wrap(err)
		}
		ext.value = bytes.Clone(value)
		ext.raw = bytes.Clone(raw)
	}
	return ext, nil
}

// AddExtension appends an extension directive, see NewExtension.
func (c *CacheControl) AddExtension(name string, value []byte) error {
	ext, err := NewExtension(name, value)
	if err != nil {
		return errtrace.Wrap(err)
	}
	c.extensions = append(c.extensions, ext)
	return nil
}

// Name returns the directive name as received.
func (e Extension) Name() string { return e.name }

// Argument returns the unquoted argument and whether there was one.
func (e Extension) Argument() ([]byte, bool) { return e.value, e.raw != nil }

// Raw returns the argument in its wire form (token or quoted-string).
func (e Extension) Raw() []byte { return e.raw }

func (e Extension) String() string {
	if e.raw == nil {
		return e.name
	}
	return e.name + "=" + string(e.raw)
}

func (e Extension) Equal(other Extension) bool {
	return e.name == other.name && (e.raw == nil) == (other.raw == nil) && bytes.Equal(e.raw, other.raw)
}

// newDecodedExtension copies the name and argument out of the input buffer.
func newDecodedExtension(name []byte, arg *argument) Extension {
	ext := Extension{name: string(name)}
	if arg == nil {
		return ext
	}
	ext.raw = bytes.Clone(arg.raw)
	switch {
	case arg.escaped:
		ext.value = rfc9110.Unquote(ext.raw, true)
	case arg.quoted:
		ext.value = ext.raw[1 : len(ext.raw)-1]
	default:
		ext.value = ext.raw
	}
	return ext
}
