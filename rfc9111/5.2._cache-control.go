package rfc9111

import (
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/always-cache/ccfield/rfc9110"
)

// CacheControl is the decoded value of the "Cache-Control" header (/field).
// The zero value is an empty field with no directives.
//
// §  5.2. Cache-Control
// §
// §  The "Cache-Control" header field is used to list directives for caches along
// §  the request/response chain. Cache directives are unidirectional, in that the
// §  presence of a directive in a request does not imply that the same directive is
// §  present or copied in the response.
// §
// §    Cache-Control   = #cache-directive
// §
// §    cache-directive = token [ "=" ( token / quoted-string ) ]
// §
// §  For the cache directives defined below, no argument is defined (nor allowed) unless stated otherwise.
type CacheControl struct {
	// one bit per registered directive
	present uint32
	seconds [numDeltaSeconds]uint64
	noCache []string
	private []string
	// unregistered directives, in the order they were first seen
	extensions []Extension
}

type directive uint8

// Registered directives in the order they are encoded.
const (
	dirMaxAge directive = iota
	dirMaxStale
	dirMinFresh
	dirSMaxAge
	dirStaleWhileRevalidate
	dirStaleIfError
	dirNoCache
	dirPrivate
	dirNoStore
	dirNoTransform
	dirOnlyIfCached
	dirMustRevalidate
	dirMustUnderstand
	dirProxyRevalidate
	dirPublic
	dirImmutable
	dirTransform
	numDirectives
)

// directives before dirNoCache take a delta-seconds argument
const numDeltaSeconds = int(dirNoCache)

type argumentKind uint8

const (
	argNone argumentKind = iota
	argDeltaSeconds
	argFieldNames
)

var directives = [numDirectives]struct {
	name string
	arg  argumentKind
}{
	dirMaxAge:               {"max-age", argDeltaSeconds},
	dirMaxStale:             {"max-stale", argDeltaSeconds},
	dirMinFresh:             {"min-fresh", argDeltaSeconds},
	dirSMaxAge:              {"s-maxage", argDeltaSeconds},
	dirStaleWhileRevalidate: {"stale-while-revalidate", argDeltaSeconds},
	dirStaleIfError:         {"stale-if-error", argDeltaSeconds},
	dirNoCache:              {"no-cache", argFieldNames},
	dirPrivate:              {"private", argFieldNames},
	dirNoStore:              {"no-store", argNone},
	dirNoTransform:          {"no-transform", argNone},
	dirOnlyIfCached:         {"only-if-cached", argNone},
	dirMustRevalidate:       {"must-revalidate", argNone},
	dirMustUnderstand:       {"must-understand", argNone},
	dirProxyRevalidate:      {"proxy-revalidate", argNone},
	dirPublic:               {"public", argNone},
	dirImmutable:            {"immutable", argNone},
	dirTransform:            {"transform", argNone},
}

var directivesByName = func() map[string]directive {
	m := make(map[string]directive, numDirectives)
	for d := directive(0); d < numDirectives; d++ {
		m[directives[d].name] = d
	}
	return m
}()

func (d directive) String() string    { return directives[d].name }
func (d directive) arg() argumentKind { return directives[d].arg }
func (d directive) bit() uint32       { return 1 << d }

func lookupDirective(name []byte) (directive, bool) {
	d, ok := directivesByName[string(name)]
	return d, ok
}

// IsRegistered reports whether name is one of the directives this package
// decodes into dedicated fields. Matching is case-sensitive.
func IsRegistered(name string) bool {
	_, ok := directivesByName[name]
	return ok
}

func (c CacheControl) has(d directive) bool { return c.present&d.bit() != 0 }

func (c CacheControl) deltaSeconds(d directive) (uint64, bool) {
	if !c.has(d) {
		return 0, false
	}
	return c.seconds[d], true
}

func (c CacheControl) fieldNames(d directive) ([]string, bool) {
	if !c.has(d) {
		return nil, false
	}
	if d == dirPrivate {
		return c.private, true
	}
	return c.noCache, true
}

func (c *CacheControl) setDeltaSeconds(d directive, v uint64) {
	c.present |= d.bit()
	c.seconds[d] = v
}

// An empty list is stored as nil: the directive is present without a value.
func (c *CacheControl) setFieldNames(d directive, names []string) {
	c.present |= d.bit()
	if len(names) == 0 {
		names = nil
	}
	if d == dirPrivate {
		c.private = names
	} else {
		c.noCache = names
	}
}

func (c *CacheControl) setFlag(d directive) { c.present |= d.bit() }

// IsEmpty reports whether no directive at all is present.
func (c CacheControl) IsEmpty() bool {
	return c.present == 0 && len(c.extensions) == 0
}

// HasDirective returns whether the specified directive is present.
func (c CacheControl) HasDirective(directive string) bool {
	_, ok := c.Get(directive)
	return ok
}

// Get returns the value (/argument) of the specified directive,
// along with a boolean indicating whether this directive is present.
// Delta-seconds are rendered in decimal, field-name lists comma-separated
// and directives without an argument have an empty value.
func (c CacheControl) Get(directive string) (string, bool) {
	if d, ok := directivesByName[directive]; ok {
		switch d.arg() {
		case argDeltaSeconds:
			if v, ok := c.deltaSeconds(d); ok {
				return strconv.FormatUint(v, 10), true
			}
		case argFieldNames:
			if names, ok := c.fieldNames(d); ok {
				return strings.Join(names, ","), true
			}
		default:
			return "", c.has(d)
		}
		return "", false
	}
	if ext, ok := c.Extension(directive); ok {
		v, _ := ext.Argument()
		return string(v), true
	}
	return "", false
}

// Extension returns the first extension directive with the given name.
func (c CacheControl) Extension(name string) (Extension, bool) {
	for _, ext := range c.extensions {
		if ext.name == name {
			return ext, true
		}
	}
	return Extension{}, false
}

// Extensions returns the unregistered directives in the order they were seen.
func (c CacheControl) Extensions() []Extension {
	return slices.Clone(c.extensions)
}

// SetDeltaSeconds sets a directive that takes a delta-seconds argument.
func (c *CacheControl) SetDeltaSeconds(directive string, seconds uint64) error {
	d, ok := directivesByName[directive]
	if !ok || d.arg() != argDeltaSeconds {
		return errtrace.Wrap(errNotA(directive, "delta-seconds directive"))
	}
	c.setDeltaSeconds(d, seconds)
	return nil
}

// SetFieldNames sets no-cache or private. Without names the directive is
// set in its unqualified form.
func (c *CacheControl) SetFieldNames(directive string, names ...string) error {
	d, ok := directivesByName[directive]
	if !ok || d.arg() != argFieldNames {
		return errtrace.Wrap(errNotA(directive, "field-name list directive"))
	}
	for _, name := range names {
		if !rfc9110.IsToken(name) {
			return errtrace.Wrap(errNotA(name, "field name"))
		}
	}
	c.setFieldNames(d, slices.Clone(names))
	return nil
}

// SetFlag sets a directive that takes no argument.
func (c *CacheControl) SetFlag(directive string) error {
	d, ok := directivesByName[directive]
	if !ok || d.arg() != argNone {
		return errtrace.Wrap(errNotA(directive, "directive without argument"))
	}
	c.setFlag(d)
	return nil
}

// Remove deletes every occurrence of the named directive.
func (c *CacheControl) Remove(directive string) {
	if d, ok := directivesByName[directive]; ok {
		c.present &^= d.bit()
		switch d {
		case dirNoCache:
			c.noCache = nil
		case dirPrivate:
			c.private = nil
		}
		if d < dirNoCache {
			c.seconds[d] = 0
		}
		return
	}
	c.extensions = slices.DeleteFunc(c.extensions, func(ext Extension) bool {
		return ext.name == directive
	})
}

// Equal reports whether both values encode to the same field value.
func (c CacheControl) Equal(other CacheControl) bool {
	if c.present != other.present || c.seconds != other.seconds ||
		!slices.Equal(c.noCache, other.noCache) || !slices.Equal(c.private, other.private) {
		return false
	}
	return slices.EqualFunc(c.extensions, other.extensions, Extension.Equal)
}
