package ccfield

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

func TestRuleFinder(t *testing.T) {
	makeReq := func(method, path string) *http.Request {
		req, _ := http.NewRequest(method, path, nil)
		return req
	}

	rules := Rules{
		Rule{Prefix: "/wp-", Override: "no-cache"},
		Rule{Method: "post", Path: "/form", Override: "no-store"},
		Rule{Query: map[string]string{"preview": ""}, Override: "private"},
		Rule{Query: map[string]string{"v": "2"}, Override: "immutable"},
		Rule{Override: "default"},
	}

	if rule := rules.find(makeReq("GET", "/")); rule == nil || rule.Override != "default" {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("GET", "/wp-admin")); rule == nil || rule.Override != "no-cache" {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("POST", "/wp-admin")); rule != nil {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("POST", "/form")); rule == nil || rule.Override != "no-store" {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("GET", "/page?preview")); rule == nil || rule.Override != "private" {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("GET", "/page?v=2")); rule == nil || rule.Override != "immutable" {
		t.Fatal("Incorrect rule")
	}
	if rule := rules.find(makeReq("GET", "/page?v=1")); rule == nil || rule.Override != "default" {
		t.Fatal("Incorrect rule")
	}
}

func TestApply(t *testing.T) {
	h := make(http.Header)
	log := zerolog.Nop()
	ruleDefault := Rule{Default: "default"}
	ruleOverride := Rule{Override: "override"}

	// try to apply default
	applyRuleToHeader(&log, ruleDefault, h)
	if cc := h.Get("Cache-Control"); cc != "default" {
		t.Fatalf("Cache-Control header wrong, is '%s'", cc)
	}

	// change cc and check default is not set
	h.Set("Cache-Control", "no-cache")
	applyRuleToHeader(&log, ruleDefault, h)
	if cc := h.Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control header wrong, is '%s'", cc)
	}

	// check that override works
	applyRuleToHeader(&log, ruleOverride, h)
	if cc := h.Get("Cache-Control"); cc != "override" {
		t.Fatalf("Cache-Control header wrong, is '%s'", cc)
	}
}

func TestApplyOnlyToSuccess(t *testing.T) {
	req, _ := http.NewRequest("GET", "/", nil)
	h := make(http.Header)
	Rules{{Override: "no-store"}}.Apply(req, http.StatusNotFound, h)
	if cc := h.Get("Cache-Control"); cc != "" {
		t.Fatalf("Cache-Control header set on 404: '%s'", cc)
	}
}

func TestCanonicalRules(t *testing.T) {
	rules, err := Rules{{Default: "public,max-age=60", Override: ""}}.Canonical()
	if err != nil {
		t.Fatal(err)
	}
	if rules[0].Default != "max-age=60, public" {
		t.Fatalf("Default is %q", rules[0].Default)
	}
	for _, rule := range []Rule{{Default: "max-age"}, {Override: "no-store=1"}, {Override: " , "}} {
		if _, err := (Rules{rule}).Canonical(); err == nil {
			t.Fatalf("%+v should be invalid", rule)
		}
	}
}
