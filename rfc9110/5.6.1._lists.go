package rfc9110

import "bytes"

// §  5.6.1.  Lists (#rule ABNF Extension)
// §
// §     A #rule extension to the ABNF rules of [RFC5234] is used to improve
// §     readability in the definitions of some header field values.
// §
// §     A construct "#" is defined, similar to "*", for defining comma-
// §     delimited lists of elements.  The full form is "<n>#<m>element"
// §     indicating at least <n> and at most <m> elements, each separated by a
// §     single comma (",") and optional whitespace (OWS, defined in
// §     Section 5.6.3).
//
// §  5.6.1.2.  Recipient Requirements
// §
// §     Empty elements do not contribute to the count of elements present.
// §     A recipient MUST parse and ignore a reasonable number of empty list
// §     elements: enough to handle common mistakes by senders that merge
// §     values, but not so much that they could be used as a denial-of-
// §     service mechanism.  In other words, a recipient MUST accept lists
// §     that satisfy the following syntax:
// §
// §       #element => [ element ] *( OWS "," OWS [ element ] )

// ParseFieldNameList parses a #field-name list, e.g. the argument of the
// no-cache and private response directives. Empty elements are ignored;
// two names not separated by a comma are a syntax error. The result is nil
// when the list has no elements. Names are returned as written.
func ParseFieldNameList(b []byte) ([]string, error) {
	var names []string
	expectName := true
	for pos := SkipOWS(b, 0); pos < len(b); pos = SkipOWS(b, pos) {
		switch c := b[pos]; {
		case c == ',':
			expectName = true
			pos++
		case IsTchar(c) && expectName:
			end := ScanToken(b, pos)
			names = append(names, string(b[pos:end]))
			expectName = false
			pos = end
		default:
			return nil, NewSyntaxError("", pos)
		}
	}
	return names, nil
}

// FirstListMember implements the recovery rule for singleton fields that
// were received as a list, such as Age: the first member, across all field
// lines in order, that parse accepts is the result and the remaining members
// are not looked at. Members are delimited by commas and trimmed of OWS;
// empty members and members parse rejects are skipped. The boolean is false
// when no member was accepted.
func FirstListMember[S Octets, T any](values []S, parse func([]byte) (T, error)) (T, bool) {
	for _, value := range values {
		rest := []byte(value)
		for len(rest) > 0 {
			var member []byte
			member, rest, _ = bytes.Cut(rest, []byte{','})
			member = TrimOWS(member)
			if len(member) == 0 {
				continue
			}
			if v, err := parse(member); err == nil {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}
