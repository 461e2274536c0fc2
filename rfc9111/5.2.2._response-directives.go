package rfc9111

import (
	"slices"
	"time"
)

// §  5.2.2.  Response Directives
// §
// §     This section defines cache response directives.  A cache MUST obey the
// §     Cache-Control directives defined in this section.

// §  5.2.2.1.  max-age
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The max-age response directive indicates that the response is to be
// §     considered stale after its age is greater than the specified number
// §     of seconds.

// MaxAge returns the max-age directive, clamped to the largest time.Duration.
func (c CacheControl) MaxAge() (time.Duration, bool) { return c.duration(dirMaxAge) }

// SetMaxAge sets max-age, truncated to whole seconds.
func (c *CacheControl) SetMaxAge(d time.Duration) {
	c.setDeltaSeconds(dirMaxAge, durationToDeltaSeconds(d))
}

// §  5.2.2.2.  must-revalidate
// §
// §     The must-revalidate response directive indicates that once the
// §     response has become stale, a cache MUST NOT reuse that response to
// §     satisfy another request until it has been successfully validated by
// §     the origin, as defined by Section 4.3.

func (c CacheControl) MustRevalidate() bool { return c.has(dirMustRevalidate) }

// §  5.2.2.3.  must-understand
// §
// §     The must-understand response directive limits caching of the response
// §     to a cache that understands and conforms to the requirements for that
// §     response's status code.

func (c CacheControl) MustUnderstand() bool { return c.has(dirMustUnderstand) }

// §  5.2.2.4.  no-cache
// §
// §     Argument syntax:
// §
// §        #field-name
// §
// §     The no-cache response directive, in its unqualified form (without an
// §     argument), indicates that the response MUST NOT be used to satisfy
// §     any other request without forwarding it for validation and receiving
// §     a successful response; see Section 4.3.
// §
// §     The qualified form of the no-cache response directive, with an
// §     argument that lists one or more field names, indicates that a cache
// §     MAY use the response to satisfy a subsequent request, subject to any
// §     other restrictions on caching, if the listed header fields are
// §     excluded from the subsequent response or the subsequent response has
// §     been successfully revalidated with the origin server (updating or
// §     removing those fields).
// §
// §     This directive uses the quoted-string form of the argument syntax.  A
// §     sender SHOULD NOT generate the token form (even if quoting appears not
// §     to be needed for single-entry lists).

// NoCache returns the field names of the no-cache directive. The names are
// nil for the unqualified form.
func (c CacheControl) NoCache() ([]string, bool) {
	names, ok := c.fieldNames(dirNoCache)
	return slices.Clone(names), ok
}

// SetNoCache sets no-cache, unqualified when no names are given.
func (c *CacheControl) SetNoCache(names ...string) error {
	return c.SetFieldNames(dirNoCache.String(), names...)
}

// §  5.2.2.5.  no-store
// §
// §     The no-store response directive indicates that a cache MUST NOT store
// §     any part of either the immediate request or the response and MUST NOT
// §     use the response to satisfy any other request.
//
// NoStore is shared with the request directive.

// SetNoStore sets no-store.
func (c *CacheControl) SetNoStore() { c.setFlag(dirNoStore) }

// §  5.2.2.6.  no-transform
// §
// §     The no-transform response directive indicates that an intermediary
// §     (regardless of whether it implements a cache) MUST NOT transform the
// §     content, as defined in Section 7.7 of [HTTP].

// §  5.2.2.7.  private
// §
// §     Argument syntax:
// §
// §        #field-name
// §
// §     The unqualified private response directive indicates that a shared
// §     cache MUST NOT store the response (i.e., the response is intended for
// §     a single user).

// Private returns the field names of the private directive. The names are
// nil for the unqualified form.
func (c CacheControl) Private() ([]string, bool) {
	names, ok := c.fieldNames(dirPrivate)
	return slices.Clone(names), ok
}

// SetPrivate sets private, unqualified when no names are given.
func (c *CacheControl) SetPrivate(names ...string) error {
	return c.SetFieldNames(dirPrivate.String(), names...)
}

// §  5.2.2.8.  proxy-revalidate
// §
// §     The proxy-revalidate response directive indicates that once the
// §     response has become stale, a shared cache MUST NOT reuse that
// §     response to satisfy another request until it has been successfully
// §     validated by the origin, as defined by Section 4.3.

func (c CacheControl) ProxyRevalidate() bool { return c.has(dirProxyRevalidate) }

// §  5.2.2.9.  public
// §
// §     The public response directive indicates that a cache MAY store the
// §     response even if it would otherwise be prohibited, subject to the
// §     constraints defined in Section 3.

func (c CacheControl) Public() bool { return c.has(dirPublic) }

// SetPublic sets public.
func (c *CacheControl) SetPublic() { c.setFlag(dirPublic) }

// §  5.2.2.10.  s-maxage
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The s-maxage response directive indicates that, for a shared cache,
// §     the maximum age specified by this directive overrides the maximum age
// §     specified by either the max-age directive or the Expires header
// §     field.

func (c CacheControl) SMaxAge() (time.Duration, bool) { return c.duration(dirSMaxAge) }

// SetSMaxAge sets s-maxage, truncated to whole seconds.
func (c *CacheControl) SetSMaxAge(d time.Duration) {
	c.setDeltaSeconds(dirSMaxAge, durationToDeltaSeconds(d))
}

// Directives registered outside RFC 9111 (RFC 5861, RFC 8246 and the
// IANA Hypertext Transfer Protocol (HTTP) Cache Directive Registry).

func (c CacheControl) StaleWhileRevalidate() (time.Duration, bool) {
	return c.duration(dirStaleWhileRevalidate)
}

func (c CacheControl) StaleIfError() (time.Duration, bool) { return c.duration(dirStaleIfError) }

func (c CacheControl) Immutable() bool { return c.has(dirImmutable) }

func (c CacheControl) Transform() bool { return c.has(dirTransform) }
