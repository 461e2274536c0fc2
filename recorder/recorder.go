// Package recorder stores how the caching header fields of proxied responses
// were received and what they were normalized to.
package recorder

import (
	"context"
	"time"
)

// Observation is one decode of a caching header field on a response.
type Observation struct {
	Key   string `json:"key"`
	Field string `json:"field"`
	// Raw holds the field lines as received.
	Raw []string `json:"raw"`
	// Canonical is the re-encoded value, empty if the field was invalid or
	// held nothing to send.
	Canonical  string    `json:"canonical,omitempty"`
	Error      string    `json:"error,omitempty"`
	ObservedAt time.Time `json:"observedAt"`
}

// Valid reports whether the field decoded without error.
func (o Observation) Valid() bool { return o.Error == "" }

// Recorder keeps the latest observation per key and field.
//
// Implementations must be thread-safe!
type Recorder interface {
	// Record stores o, replacing an earlier observation of the same key and field.
	Record(ctx context.Context, o Observation) error
	// All returns the observations whose key starts with prefix, ordered by key and field.
	All(ctx context.Context, prefix string) ([]Observation, error)
	Close() error
}
