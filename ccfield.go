// Package ccfield is a reverse proxy that rewrites the caching header fields
// of origin responses (Cache-Control, Age and Expires) into their canonical
// form and records how they were received.
//
// It only touches the syntax of the fields. Whether and for how long a
// response may be cached is left to the caches downstream.
package ccfield

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	fieldkey "github.com/always-cache/ccfield/pkg/field-key"
	"github.com/always-cache/ccfield/recorder"
)

// Mode selects what happens to the caching fields of a response.
type Mode string

const (
	// ModeNormalize rewrites valid fields to their canonical form and drops an invalid Age.
	ModeNormalize Mode = "normalize"
	// ModeObserve only records the fields.
	ModeObserve Mode = "observe"
)

// ParseMode parses a mode name case-insensitively. The empty name is ModeNormalize.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeNormalize, ModeObserve:
		return m, nil
	case "":
		return ModeNormalize, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

type Config struct {
	// URL of the origin server.
	// Origins with paths are not supported.
	OriginURL url.URL
	// Hostname to use for HTTP requests and TLS negotiation.
	// Use if needed if e.g. the origin URL is just an IP address.
	OriginHost string
	// Logger to use. A console logger is used if nil.
	Logger *zerolog.Logger
	// Cache-Control defaults and overrides applied before normalization.
	Rules Rules
	// Storage for observations. Nothing is recorded if nil.
	Recorder recorder.Recorder
	// Normalize by default.
	Mode Mode
	// Transport for origin requests. If nil, http.DefaultTransport is used,
	// or a transport negotiating TLS for OriginHost if that is set.
	Transport http.RoundTripper
}

type Proxy struct {
	keyer        fieldkey.Keyer
	log          zerolog.Logger
	rules        atomic.Pointer[Rules]
	recorder     recorder.Recorder
	mode         Mode
	reverseproxy httputil.ReverseProxy
	now          func() time.Time
}

// New creates the proxy for one origin.
// It returns an error if a rule holds an invalid Cache-Control value.
func New(config Config) (*Proxy, error) {
	// use console logger if not specified in config
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = *config.Logger
	}

	// create a child logger and add defaults
	logger = logger.With().
		Str("origin", config.OriginURL.String()).
		Logger()

	mode := config.Mode
	if mode == "" {
		mode = ModeNormalize
	}

	p := &Proxy{
		keyer:    fieldkey.NewKeyer(config.OriginURL.String()),
		log:      logger,
		recorder: config.Recorder,
		mode:     mode,
		now:      time.Now,
	}
	if err := p.SetRules(config.Rules); err != nil {
		return nil, err
	}

	host := config.OriginURL.Host
	hostHeader := host
	transport := config.Transport
	if config.OriginHost != "" {
		hostHeader = config.OriginHost
		if transport == nil {
			transport = &http.Transport{
				TLSClientConfig: &tls.Config{
					ServerName: config.OriginHost,
				},
			}
		}
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	p.reverseproxy = httputil.ReverseProxy{
		Director:  createDirector(config.OriginURL.Scheme, host, hostHeader),
		Transport: transport,
		ModifyResponse: func(res *http.Response) error {
			p.process(res.Request, res.StatusCode, res.Header)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.requestLogger(r).Error().Err(err).Msg("Could not get response from origin")
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return p, nil
}

// SetRules validates rules and replaces the active rule set.
// The active rules are kept if validation fails.
func (p *Proxy) SetRules(rules Rules) error {
	canonical, err := rules.Canonical()
	if err != nil {
		return err
	}
	p.rules.Store(&canonical)
	return nil
}

// Rules returns the active rule set.
func (p *Proxy) Rules() Rules {
	if rules := p.rules.Load(); rules != nil {
		return *rules
	}
	return nil
}

// ServeHTTP implements the http.Handler interface.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.log.Trace().Msgf("proxying %s", r.URL.String())
	p.reverseproxy.ServeHTTP(w, r)
}

// process applies the rules to a response header, normalizes its caching
// fields and records them.
func (p *Proxy) process(r *http.Request, status int, h http.Header) {
	log := p.requestLogger(r)
	p.Rules().Apply(r, status, h)

	observations := normalizeHeader(h, p.mode == ModeNormalize)
	invalid := 0
	for i := range observations {
		o := &observations[i]
		o.Key = p.keyer.Key(r, o.Field)
		o.ObservedAt = p.now()
		if !o.Valid() {
			invalid++
			log.Debug().Str("field", o.Field).Strs("raw", o.Raw).Str("error", o.Error).Msg("Invalid field value")
			traceInvalidField(r.Context(), *o)
		}
		p.record(r.Context(), log, *o)
	}
	p.logRequest(r, status, len(observations), invalid)
}

func (p *Proxy) record(ctx context.Context, log *zerolog.Logger, o recorder.Observation) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Record(ctx, o); err != nil {
		log.Error().Err(err).Msg("Could not record observation")
	}
}

// requestLogger returns the request logger set up by Handler, or the proxy
// logger for requests that did not pass through it.
func (p *Proxy) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &p.log
}

func (p *Proxy) logRequest(r *http.Request, status, fields, invalid int) {
	p.requestLogger(r).Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Str("sourceIp", getRequestSourceIp(r)).
		Int("status", status).
		Int("fields", fields).
		Int("invalid", invalid).
		Str("mode", string(p.mode)).
		Msg("Sending response to client")
}

func createDirector(scheme, host, hostHeader string) func(req *http.Request) {
	return func(req *http.Request) {
		req.URL.Scheme = scheme
		req.URL.Host = host
		if hostHeader != "" {
			req.Host = hostHeader
		}
	}
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	// if not found, return
	if portSepIdx < 0 {
		return ipAndPort
	}
	ip := ipAndPort[:portSepIdx]
	return ip
}
