package fieldkey

import (
	"net/http"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	keygen := NewKeyer("this-is-the-origin")
	r, _ := http.NewRequest("GET", "http://dev.localhost/page?a=b", nil)
	key := keygen.Key(r, "Cache-Control")
	method, uri, field, err := keygen.Parse(key)
	if err != nil {
		t.Fatalf("%s: %s", key, err)
	}
	if uri != "/page?a=b" {
		t.Fatalf("Request URI for key %s is %s", key, uri)
	}
	if field != "Cache-Control" || method != "GET" {
		t.Fatalf("Field %s method %s", field, method)
	}
}

func TestKeyPrefix(t *testing.T) {
	keygen := NewKeyer("origin")
	r, _ := http.NewRequest("HEAD", "http://dev.localhost/a", nil)
	if key := keygen.Key(r, "Age"); !strings.HasPrefix(key, keygen.KeyPrefix(r)) ||
		!strings.HasPrefix(key, keygen.MethodPrefix("HEAD")) {
		t.Fatalf("Key is %q", key)
	}
	if key := keygen.KeyPrefix(r); key != "origin:HEAD:/a\t" {
		t.Fatalf("Key prefix is %q", key)
	}
}

func TestParseErrors(t *testing.T) {
	keygen := NewKeyer("origin")
	for _, key := range []string{"other:GET:/\tAge", "origin:GET:/", "origin:GET\tAge"} {
		if _, _, _, err := keygen.Parse(key); err == nil {
			t.Fatalf("%q should not parse", key)
		}
	}
}

func TestOriginPrefixIncludesOrigin(t *testing.T) {
	origin := "this-is-the-origin"
	keygen := NewKeyer(origin)
	if !strings.Contains(keygen.OriginPrefix, origin) {
		t.Fatalf("OriginPrefix is %s", keygen.OriginPrefix)
	}
}
