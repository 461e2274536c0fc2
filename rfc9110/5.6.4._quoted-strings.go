package rfc9110

// §  5.6.4.  Quoted Strings
// §
// §     A string of text is parsed as a single value if it is quoted using
// §     double-quote marks.
// §
// §       quoted-string  = DQUOTE *( qdtext / quoted-pair ) DQUOTE
// §       qdtext         = HTAB / SP / %x21 / %x23-5B / %x5D-7E / obs-text
// §
// §     The backslash octet ("\") can be used as a single-octet quoting
// §     mechanism within quoted-string and comment constructs.  Recipients
// §     that process the value of a quoted-string MUST handle a quoted-pair
// §     as if it were replaced by the octet following the backslash.
// §
// §       quoted-pair    = "\" ( HTAB / SP / VCHAR / obs-text )
// §
// §     A sender SHOULD NOT generate a quoted-pair in a quoted-string except
// §     where necessary to quote DQUOTE and backslash octets occurring within
// §     that string.

// IsQDText reports whether c may appear unescaped inside a quoted-string.
func IsQDText(c byte) bool { return byteClass[c]&classQDText != 0 }

// IsQuotedPairChar reports whether c may follow a backslash in a quoted-pair.
func IsQuotedPairChar(c byte) bool { return byteClass[c]&classQuotedPair != 0 }

// ScanQuotedString scans the quoted-string that starts with the DQUOTE at pos.
// It returns the position just past the closing DQUOTE and whether any
// quoted-pair was seen. Failures are reported as *SyntaxError with the
// offset of the offending byte.
func ScanQuotedString(b []byte, pos int) (end int, escaped bool, err error) {
	if pos >= len(b) || b[pos] != '"' {
		return pos, false, NewSyntaxError("", pos)
	}
	for i := pos + 1; i < len(b); {
		switch c := b[i]; {
		case c == '"':
			return i + 1, escaped, nil
		case c == '\\':
			if i+1 >= len(b) || !IsQuotedPairChar(b[i+1]) {
				return i, escaped, NewSyntaxError("", i)
			}
			escaped = true
			i += 2
		case IsQDText(c):
			i++
		default:
			return i, escaped, NewSyntaxError("", i)
		}
	}
	return len(b), escaped, NewSyntaxError("", len(b))
}

// Unquote returns the content of a complete quoted-string as returned by
// ScanQuotedString. Without escapes the result aliases quoted; otherwise
// every quoted-pair is replaced by the octet it quotes.
func Unquote(quoted []byte, escaped bool) []byte {
	inner := quoted[1 : len(quoted)-1]
	if !escaped {
		return inner
	}
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		out = append(out, inner[i])
	}
	return out
}

// Quote renders v as a quoted-string, escaping only DQUOTE and backslash.
// It fails if v contains an octet that cannot be carried in a quoted-string.
func Quote(v []byte) ([]byte, error) {
	out := make([]byte, 0, len(v)+2)
	out = append(out, '"')
	for i, c := range v {
		switch {
		case c == '"' || c == '\\':
			out = append(out, '\\', c)
		case IsQDText(c):
			out = append(out, c)
		default:
			return nil, NewSyntaxError("", i)
		}
	}
	return append(out, '"'), nil
}

// QuoteIfNeeded returns v unchanged when it is a token and its quoted-string
// form otherwise.
func QuoteIfNeeded(v []byte) ([]byte, error) {
	if IsToken(v) {
		return v, nil
	}
	return Quote(v)
}
