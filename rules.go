package ccfield

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/always-cache/ccfield/rfc9111"
)

type Rules []Rule

// Rule sets the Cache-Control field of successful responses to matching requests.
// A rule without a method only matches GET requests.
type Rule struct {
	Prefix string `yaml:"prefix"`
	Path   string `yaml:"path"`
	Method string `yaml:"method"`
	// Cache-Control value used if the response has none.
	Default string `yaml:"default"`
	// Cache-Control value replacing whatever the response has.
	Override string            `yaml:"override"`
	Query    map[string]string `yaml:"query"`
	Headers  map[string]string `yaml:"headers"`
}

// Canonical returns a copy of the rules with Default and Override in
// canonical form. It fails on the first value that is not a valid
// Cache-Control field value.
func (r Rules) Canonical() (Rules, error) {
	out := make(Rules, len(r))
	for i, rule := range r {
		var err error
		if rule.Default, err = canonicalCacheControl(rule.Default); err != nil {
			return nil, fmt.Errorf("rule %d default: %w", i, err)
		}
		if rule.Override, err = canonicalCacheControl(rule.Override); err != nil {
			return nil, fmt.Errorf("rule %d override: %w", i, err)
		}
		out[i] = rule
	}
	return out, nil
}

func canonicalCacheControl(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	cc, err := rfc9111.ParseCacheControl([]string{value})
	if err != nil {
		return "", err
	}
	if cc.IsEmpty() {
		return "", fmt.Errorf("%q has no directives", value)
	}
	return cc.String(), nil
}

// Apply applies the first rule matching r to the response header h.
func (r Rules) Apply(req *http.Request, status int, h http.Header) {
	// only apply rules for successes
	if status != http.StatusOK {
		return
	}
	// if rule found, apply to response
	if rule := r.find(req); rule != nil {
		applyRuleToHeader(zerolog.Ctx(req.Context()), *rule, h)
	}
}

func applyRuleToHeader(log *zerolog.Logger, rule Rule, h http.Header) {
	if rule.Override != "" {
		log.Trace().Msg("Overriding Cache-Control header")
		h.Set("Cache-Control", rule.Override)
	} else if rule.Default != "" && len(h.Values("Cache-Control")) == 0 {
		log.Trace().Msg("Applying default Cache-Control header")
		h.Set("Cache-Control", rule.Default)
	}
	for name, value := range rule.Headers {
		log.Trace().Msgf("Setting header %s", name)
		h.Set(name, value)
	}
}

func (r Rules) find(req *http.Request) *Rule {
	log := zerolog.Ctx(req.Context())
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for i := range r {
		rule := &r[i]
		if rule.Method == "" && req.Method != http.MethodGet {
			continue
		}
		if rule.Method != "" && !strings.EqualFold(rule.Method, req.Method) {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		log.Trace().Msgf("Using rule %+v", *rule)
		return rule
	}
	return nil
}
