package rfc9111

import (
	"math"
	"net/http"
	"testing"
	"time"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		values []string
		want   Age
		ok     bool
	}{
		{[]string{"123"}, 123, true},
		{[]string{", ,,, ,  123, ,    ,"}, 123, true},
		{[]string{"123123123123123123123"}, math.MaxUint64, true},
		{[]string{"123, 234"}, 123, true},
		{[]string{"", "7"}, 7, true},
		{[]string{"x", "8, 9"}, 8, true},
		{[]string{"123 234"}, 0, false},
		{[]string{"7200;foo=bar"}, 0, false},
		{[]string{"-1"}, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAge(tt.values)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%q: %d, %v", tt.values, got, ok)
		}
	}
}

func TestAgeHeader(t *testing.T) {
	h := http.Header{"Age": {"abc, 60"}}
	age, ok := AgeFromHeader(h)
	if !ok || age.Duration() != time.Minute {
		t.Fatalf("Age is %v", age)
	}
	age.Encode(h)
	if got := h.Get("Age"); got != "60" {
		t.Fatalf("encoded as %q", got)
	}
	if _, ok := AgeFromHeader(http.Header{}); ok {
		t.Fatal("absent Age should not be ok")
	}
}

func TestAgeFromDuration(t *testing.T) {
	if a := AgeFromDuration(5*time.Second + 900*time.Millisecond); a.String() != "5" {
		t.Fatalf("Age is %s", a)
	}
	if a := AgeFromDuration(-time.Hour); a != 0 {
		t.Fatalf("Age is %s", a)
	}
	if d := Age(math.MaxUint64).Duration(); d != math.MaxInt64 {
		t.Fatalf("Duration is %v", d)
	}
}

func TestDecodeAgeBytes(t *testing.T) {
	if a, ok := DecodeAge([][]byte{[]byte(" 42 ")}); !ok || a != 42 {
		t.Fatalf("Age is %d, %v", a, ok)
	}
}
