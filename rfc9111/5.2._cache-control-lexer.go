package rfc9111

import (
	"github.com/always-cache/ccfield/rfc9110"
)

type tokenKind uint8

const (
	tokenEnd tokenKind = iota
	tokenDirective
	tokenExtension
	tokenComma
	tokenEquals
)

func (k tokenKind) String() string {
	switch k {
	case tokenEnd:
		return "end of input"
	case tokenDirective:
		return "directive"
	case tokenExtension:
		return "extension directive"
	case tokenComma:
		return `","`
	case tokenEquals:
		return `"="`
	}
	return "unknown token"
}

// token is a span of the lexer input.
type token struct {
	kind tokenKind
	// set for tokenDirective
	directive  directive
	start, end int
}

// argument is the value following "=" in its wire form.
type argument struct {
	// offset of raw in the field value
	pos     int
	raw     []byte
	quoted  bool
	escaped bool
}

// value returns the argument with quoting removed. It aliases the input
// unless the argument contained a quoted-pair.
func (a argument) value() []byte {
	if !a.quoted {
		return a.raw
	}
	return rfc9110.Unquote(a.raw, a.escaped)
}

// lexer scans one field value. The decoder owns the cursor and decides
// whether the next thing to read is a token or an argument.
type lexer struct {
	input []byte
	pos   int
}

// next skips OWS and returns the following structural token or directive name.
// Directive names are matched case-sensitively against the registered names
// and fall back to an extension for any other tchar run.
func (l *lexer) next() (token, error) {
	l.pos = rfc9110.SkipOWS(l.input, l.pos)
	if l.pos >= len(l.input) {
		return token{kind: tokenEnd, start: l.pos, end: l.pos}, nil
	}
	start := l.pos
	switch c := l.input[start]; {
	case c == ',':
		l.pos++
		return token{kind: tokenComma, start: start, end: l.pos}, nil
	case c == '=':
		l.pos++
		return token{kind: tokenEquals, start: start, end: l.pos}, nil
	case rfc9110.IsTchar(c):
		l.pos = rfc9110.ScanToken(l.input, start)
		if d, ok := lookupDirective(l.input[start:l.pos]); ok {
			return token{kind: tokenDirective, directive: d, start: start, end: l.pos}, nil
		}
		return token{kind: tokenExtension, start: start, end: l.pos}, nil
	}
	return token{}, rfc9110.NewSyntaxError(fieldCacheControl, start)
}

// argument reads a token or quoted-string right after "=". OWS before the
// argument is tolerated; anything else that is not an argument, including the
// end of input, is a syntax error.
func (l *lexer) argument() (argument, error) {
	l.pos = rfc9110.SkipOWS(l.input, l.pos)
	start := l.pos
	if start >= len(l.input) {
		return argument{}, rfc9110.NewSyntaxError(fieldCacheControl, start)
	}
	if l.input[start] == '"' {
		end, escaped, err := rfc9110.ScanQuotedString(l.input, start)
		if err != nil {
			return argument{}, withField(err, fieldCacheControl)
		}
		l.pos = end
		return argument{pos: start, raw: l.input[start:end], quoted: true, escaped: escaped}, nil
	}
	end := rfc9110.ScanToken(l.input, start)
	if end == start {
		return argument{}, rfc9110.NewSyntaxError(fieldCacheControl, start)
	}
	l.pos = end
	return argument{pos: start, raw: l.input[start:end]}, nil
}
