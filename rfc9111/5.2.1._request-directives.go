package rfc9111

import "time"

// §  5.2.1.  Request Directives
// §
// §     This section defines cache request directives.  They are advisory;
// §     caches MAY implement them, but are not required to.

// §  5.2.1.1.  max-age
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The max-age request directive indicates that the client prefers a
// §     response whose age is less than or equal to the specified number of
// §     seconds.  Unless the max-stale request directive is also present, the
// §     client does not wish to receive a stale response.
// §
// §     This directive uses the token form of the argument syntax: e.g.,
// §     'max-age=5' not 'max-age="5"'.  A sender MUST NOT generate the
// §     quoted-string form.
//
// See also MaxAge for the response directive of the same name.

// §  5.2.1.2.  max-stale
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The max-stale request directive indicates that the client will accept
// §     a response that has exceeded its freshness lifetime.

// MaxStale returns the max-stale request directive.
func (c CacheControl) MaxStale() (time.Duration, bool) { return c.duration(dirMaxStale) }

// §  5.2.1.3.  min-fresh
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The min-fresh request directive indicates that the client prefers a
// §     response whose freshness lifetime is no less than its current age
// §     plus the specified time in seconds.

// MinFresh returns the min-fresh request directive.
func (c CacheControl) MinFresh() (time.Duration, bool) { return c.duration(dirMinFresh) }

// §  5.2.1.4.  no-cache
// §
// §     The no-cache request directive indicates that the client prefers a
// §     stored response not be used to satisfy the request without successful
// §     validation on the origin server.
//
// See NoCache for the response directive, which may carry field names.

// §  5.2.1.5.  no-store
// §
// §     The no-store request directive indicates that a cache MUST NOT store
// §     any part of either this request or any response to it.

func (c CacheControl) NoStore() bool { return c.has(dirNoStore) }

// §  5.2.1.6.  no-transform
// §
// §     The no-transform request directive indicates that the client is asking
// §     for intermediaries to avoid transforming the content, as defined in
// §     Section 7.7 of [HTTP].

func (c CacheControl) NoTransform() bool { return c.has(dirNoTransform) }

// §  5.2.1.7.  only-if-cached
// §
// §     The only-if-cached request directive indicates that the client only
// §     wishes to obtain a stored response.

func (c CacheControl) OnlyIfCached() bool { return c.has(dirOnlyIfCached) }

// duration returns a delta-seconds directive as a time.Duration.
func (c CacheControl) duration(d directive) (time.Duration, bool) {
	seconds, ok := c.deltaSeconds(d)
	if !ok {
		return 0, false
	}
	return DeltaSecondsDuration(seconds), true
}

// DeltaSeconds returns the argument of a delta-seconds directive in seconds,
// without the clamping of the time.Duration accessors.
func (c CacheControl) DeltaSeconds(directive string) (uint64, bool) {
	d, ok := directivesByName[directive]
	if !ok || d.arg() != argDeltaSeconds {
		return 0, false
	}
	return c.deltaSeconds(d)
}
