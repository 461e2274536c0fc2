package rfc9111

import (
	"net/http"
	"strconv"
)

// AppendTo appends the canonical field value to dst: registered directives in
// a fixed order, then extensions as received, separated by ", ".
func (c CacheControl) AppendTo(dst []byte) []byte {
	start := len(dst)
	sep := func() {
		if len(dst) > start {
			dst = append(dst, ", "...)
		}
	}
	for d := directive(0); d < numDirectives; d++ {
		if !c.has(d) {
			continue
		}
		sep()
		dst = append(dst, d.String()...)
		switch d.arg() {
		case argDeltaSeconds:
			dst = append(dst, '=')
			dst = strconv.AppendUint(dst, c.seconds[d], 10)
		case argFieldNames:
			names, _ := c.fieldNames(d)
			if len(names) == 0 {
				break
			}
			dst = append(dst, `="`...)
			for i, name := range names {
				if i > 0 {
					dst = append(dst, ',')
				}
				dst = append(dst, name...)
			}
			dst = append(dst, '"')
		}
	}
	for _, ext := range c.extensions {
		sep()
		dst = append(dst, ext.name...)
		if ext.raw != nil {
			dst = append(dst, '=')
			dst = append(dst, ext.raw...)
		}
	}
	return dst
}

// String returns the canonical field value, "" for an empty record.
func (c CacheControl) String() string {
	return string(c.AppendTo(nil))
}

// Encode sets the Cache-Control field of h to the canonical value, or
// removes it when no directive is present.
func (c CacheControl) Encode(h http.Header) {
	if c.IsEmpty() {
		delete(h, fieldCacheControl)
		return
	}
	h[fieldCacheControl] = []string{c.String()}
}
