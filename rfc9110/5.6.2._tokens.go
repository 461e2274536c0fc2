package rfc9110

// §  5.6.2.  Tokens
// §
// §     Tokens are short textual identifiers that do not include whitespace
// §     or delimiters.
// §
// §       token          = 1*tchar
// §
// §       tchar          = "!" / "#" / "$" / "%" / "&" / "'" / "*"
// §                      / "+" / "-" / "." / "^" / "_" / "`" / "|" / "~"
// §                      / DIGIT / ALPHA
// §                      ; any VCHAR, except delimiters
// §
// §     Many HTTP field values are defined using common syntax components,
// §     separated by whitespace or specific delimiting characters.
// §     Delimiters are chosen from the set of US-ASCII visual characters not
// §     allowed in a token (DQUOTE and "(),/:;<=>?@[\]{}").

const (
	classTchar byte = 1 << iota
	classOWS
	classQDText
	classQuotedPair
)

var byteClass [256]byte

func init() {
	for i := 0; i < len(byteClass); i++ {
		c := byte(i)
		var class byte
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			class |= classTchar
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
			class |= classTchar
		case ' ', '\t':
			class |= classOWS
		}
		// qdtext = HTAB / SP / %x21 / %x23-5B / %x5D-7E / obs-text
		if c == '\t' || c == ' ' || c == 0x21 || (c >= 0x23 && c <= 0x5B) || (c >= 0x5D && c <= 0x7E) || c >= 0x80 {
			class |= classQDText
		}
		// quoted-pair = "\" ( HTAB / SP / VCHAR / obs-text )
		if c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			class |= classQuotedPair
		}
		byteClass[i] = class
	}
}

// IsTchar reports whether c may appear in a token.
func IsTchar(c byte) bool { return byteClass[c]&classTchar != 0 }

// IsToken reports whether s is a non-empty token.
func IsToken[S Octets](s S) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsTchar(s[i]) {
			return false
		}
	}
	return true
}

// ScanToken returns the end of the run of tchars starting at pos.
// It returns pos if b[pos] is not a tchar.
func ScanToken(b []byte, pos int) int {
	for pos < len(b) && IsTchar(b[pos]) {
		pos++
	}
	return pos
}

// §  5.6.3.  Whitespace
// §
// §       OWS            = *( SP / HTAB )
// §                      ; optional whitespace
// §       RWS            = 1*( SP / HTAB )
// §                      ; required whitespace
// §       BWS            = OWS
// §                      ; "bad" whitespace

// IsOWS reports whether c is SP or HTAB.
func IsOWS(c byte) bool { return byteClass[c]&classOWS != 0 }

// SkipOWS returns the position of the first non-whitespace byte at or after pos.
func SkipOWS(b []byte, pos int) int {
	for pos < len(b) && IsOWS(b[pos]) {
		pos++
	}
	return pos
}

// TrimOWS removes leading and trailing SP and HTAB.
func TrimOWS(b []byte) []byte {
	start := SkipOWS(b, 0)
	end := len(b)
	for end > start && IsOWS(b[end-1]) {
		end--
	}
	return b[start:end]
}
