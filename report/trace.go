package report

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WithSpanContext copies the trace and span ids of the active span in ctx.
// Ids already set are kept when ctx carries no valid span context.
func (b *Builder) WithSpanContext(ctx context.Context) *Builder {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return b
	}

	b.r.TraceID = sc.TraceID().String()
	b.r.SpanID = sc.SpanID().String()

	return b
}

// Annotate attaches the report identity to span so the trace links back to the payload
// returned to the caller.
func Annotate(span trace.Span, r Report) {
	if span == nil || !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("exception.id", r.ExceptionID),
		attribute.String("exception.class", r.ExceptionClass),
		attribute.String("exception.application", r.ApplicationName),
		attribute.Int("exception.chain.length", len(r.ExceptionChain)),
	}

	if r.HTTPStatusCode != 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", r.HTTPStatusCode))
	}

	for code := range r.BusinessCodes {
		attrs = append(attrs, attribute.Bool("exception.business_code."+code, true))
	}

	span.SetAttributes(attrs...)

	correlations := make([]string, 0, len(r.ExceptionChain))
	for _, e := range r.ExceptionChain {
		if e.CorrelationID != "" {
			correlations = append(correlations, e.CorrelationID)
		}
	}

	span.AddEvent("exception.report", trace.WithAttributes(
		attribute.String("exception.message", r.Message),
		attribute.StringSlice("exception.correlation_ids", correlations),
	))
}
