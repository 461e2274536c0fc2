package ccfield

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/always-cache/ccfield/recorder"
)

// traceInvalidField adds an event to the span of the request, if it is traced.
func traceInvalidField(ctx context.Context, o recorder.Observation) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("ccfield.invalid_field", trace.WithAttributes(
		attribute.String("http.response.header.name", o.Field),
		attribute.StringSlice("http.response.header.value", o.Raw),
		attribute.String("error.message", o.Error),
	))
}
