package rfc9110

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	boundeduint "github.com/always-cache/ccfield/pkg/bounded-uint"
)

func TestTchar(t *testing.T) {
	for _, c := range []byte("!#$%&'*+-.^_`|~09azAZ") {
		if !IsTchar(c) {
			t.Fatalf("%q should be a tchar", c)
		}
	}
	for _, c := range []byte("\"(),/:;<=>?@[\\]{} \t\x00\x7f\x80") {
		if IsTchar(c) {
			t.Fatalf("%q should not be a tchar", c)
		}
	}
	if IsToken("") || !IsToken("max-age") || IsToken("max age") {
		t.Fatal("IsToken")
	}
}

func TestOWS(t *testing.T) {
	b := []byte(" \t a \t")
	if pos := SkipOWS(b, 0); pos != 3 {
		t.Fatalf("SkipOWS = %d", pos)
	}
	if got := string(TrimOWS(b)); got != "a" {
		t.Fatalf("TrimOWS = %q", got)
	}
	if got := TrimOWS([]byte(" \t ")); len(got) != 0 {
		t.Fatalf("TrimOWS = %q", got)
	}
}

func TestScanQuotedString(t *testing.T) {
	tests := []struct {
		in      string
		end     int
		escaped bool
		value   string
		wantErr bool
	}{
		{in: `""`, end: 2, value: ""},
		{in: `"abc", x`, end: 5, value: "abc"},
		{in: "\"a b\tc\"", end: 7, value: "a b\tc"},
		{in: `"a\"b"`, end: 6, escaped: true, value: `a"b`},
		{in: `"\\\""`, end: 6, escaped: true, value: `\"`},
		{in: `"\a"`, end: 4, escaped: true, value: "a"},
		{in: `"abc`, wantErr: true},
		{in: `"abc\`, wantErr: true},
		{in: "\"a\x01\"", wantErr: true},
		{in: "\"a\\\x01\"", wantErr: true},
		{in: `abc`, wantErr: true},
	}
	for _, tt := range tests {
		end, escaped, err := ScanQuotedString([]byte(tt.in), 0)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSyntax) {
				t.Fatalf("%q: expected syntax error, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if end != tt.end || escaped != tt.escaped {
			t.Fatalf("%q: end %d escaped %v", tt.in, end, escaped)
		}
		if got := string(Unquote([]byte(tt.in[:end]), escaped)); got != tt.value {
			t.Fatalf("%q: unquoted %q", tt.in, got)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, _, err := ScanQuotedString([]byte("\"ab\x7f\""), 0)
	var se *SyntaxError
	if !errors.As(err, &se) || se.Pos != 3 {
		t.Fatalf("error %v", err)
	}
}

func TestQuote(t *testing.T) {
	if got, err := Quote([]byte(`a"b\c`)); err != nil || string(got) != `"a\"b\\c"` {
		t.Fatalf("Quote = %s, %v", got, err)
	}
	if got, err := QuoteIfNeeded([]byte("token")); err != nil || string(got) != "token" {
		t.Fatalf("QuoteIfNeeded = %s, %v", got, err)
	}
	if got, err := QuoteIfNeeded([]byte("two words")); err != nil || string(got) != `"two words"` {
		t.Fatalf("QuoteIfNeeded = %s, %v", got, err)
	}
	if _, err := Quote([]byte("a\nb")); !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("Quote newline: %v", err)
	}
	// quoting and scanning back gives the original bytes
	v := []byte(`x\"y"`)
	q, _ := Quote(v)
	end, escaped, err := ScanQuotedString(q, 0)
	if err != nil || end != len(q) || string(Unquote(q, escaped)) != string(v) {
		t.Fatalf("round trip %s: %v", q, err)
	}
}

func TestParseFieldNameList(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "foo,bar,bazzz", want: []string{"foo", "bar", "bazzz"}},
		{in: ",,, , foo, bar, bazzz ,    , ", want: []string{"foo", "bar", "bazzz"}},
		{in: "Set-Cookie", want: []string{"Set-Cookie"}},
		{in: "", want: nil},
		{in: " , ,", want: nil},
		{in: "foo bar", wantErr: true},
		{in: "foo;bar", wantErr: true},
		{in: `foo,"bar"`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFieldNameList([]byte(tt.in))
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSyntax) {
				t.Fatalf("%q: expected syntax error, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%q: (-want +got)\n%s", tt.in, diff)
		}
	}
}

func TestFirstListMember(t *testing.T) {
	parse := func(b []byte) (uint64, error) {
		return boundeduint.ParseUint64(b, boundeduint.Saturating)
	}
	tests := []struct {
		values []string
		want   uint64
		ok     bool
	}{
		{[]string{"0"}, 0, true},
		{[]string{"123"}, 123, true},
		{[]string{", ,,, ,  123, ,    ,"}, 123, true},
		{[]string{"123, 234"}, 123, true},
		{[]string{"123", ""}, 123, true},
		{[]string{"", "123"}, 123, true},
		{[]string{",, ,", "123"}, 123, true},
		{[]string{"123, a"}, 123, true},
		{[]string{"a, 123"}, 123, true},
		{[]string{"a", "123"}, 123, true},
		{[]string{"123123123123123123123"}, math.MaxUint64, true},
		{[]string{"123 234"}, 0, false},
		{[]string{"-123"}, 0, false},
		{[]string{"a"}, 0, false},
		{[]string{}, 0, false},
		{[]string{",,,", " "}, 0, false},
	}
	for _, tt := range tests {
		got, ok := FirstListMember(tt.values, parse)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%q: %d, %v", tt.values, got, ok)
		}
	}
}

func TestFirstListMemberStopsAtFirst(t *testing.T) {
	calls := 0
	FirstListMember([][]byte{[]byte("x, 1, 2, 3")}, func(b []byte) (int, error) {
		calls++
		if b[0] == 'x' {
			return 0, ErrInvalidSyntax
		}
		return 1, nil
	})
	if calls != 2 {
		t.Fatalf("parse called %d times", calls)
	}
}

func TestParseHTTPDate(t *testing.T) {
	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	for _, s := range []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
		"Sun, 06 Nov 1994 08:49:37 gMT",
	} {
		got, err := ParseHTTPDate(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: %v", s, got)
		}
	}

	if got, err := ParseHTTPDate("Friday, 06-Nov-70 08:49:37 GMT"); err != nil || got.Year() != 1970 {
		t.Fatalf("70: %v, %v", got, err)
	}
	if got, err := ParseHTTPDate("Wednesday, 06-Nov-69 08:49:37 GMT"); err != nil || got.Year() != 2069 {
		t.Fatalf("69: %v, %v", got, err)
	}

	for _, s := range []string{
		"0",
		"Sun, 06 Nov 1994 08:49:37",
		"Sun 06 Nov 1994 08:49:37 GMT",
		"Win, 06 Nov 1994 08:49:37 GMT",
		"Sun, 06 Now 1994 08:49:37 GMT",
		"Mon, 06 Nov 1994 08:49:37 GMT",
		"Sun, 31 Nov 1994 08:49:37 GMT",
		"Sun, 06 Nov 1994 25:49:37 GMT",
		"Sun, 06 Nov 1994 08:60:37 GMT",
		"Sun, 06 Nov 1994 08:49:60 GMT",
	} {
		if _, err := ParseHTTPDate(s); !errors.Is(err, ErrInvalidSyntax) {
			t.Fatalf("%q: expected syntax error, got %v", s, err)
		}
	}
}

func TestFormatHTTPDate(t *testing.T) {
	d := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	if s := FormatHTTPDate(d); s != "Sun, 06 Nov 1994 08:49:37 GMT" {
		t.Fatalf("FormatHTTPDate = %s", s)
	}
}
