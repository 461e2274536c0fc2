package main

import (
	"bytes"
	"testing"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		args   []string
		status int
		out    string
	}{
		{[]string{"public,max-age=60", "no-cache"}, 0, "max-age=60, no-cache, public\n"},
		{[]string{"-field", "cache-control", `zak="\\\""`}, 0, `zak="\\\""` + "\n"},
		{[]string{"max-age=a"}, 1, ""},
		{[]string{"-field", "age", ", ,,, ,  123, ,    ,"}, 0, "123\n"},
		{[]string{"-field", "Age", "123 234"}, 1, ""},
		{[]string{"-field", "expires", "Sunday, 06-Nov-94 08:49:37 GMT"}, 0, "Sun, 06 Nov 1994 08:49:37 GMT\n"},
		{[]string{"-field", "expires", "0"}, 1, ""},
		{[]string{"-field", "vary", "*"}, 2, ""},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if status := inspect(tt.args, &out); status != tt.status {
			t.Fatalf("%q: status %d", tt.args, status)
		}
		if out.String() != tt.out {
			t.Fatalf("%q: printed %q", tt.args, out.String())
		}
	}
}
