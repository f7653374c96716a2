package exception

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/next-trace/scg-exception/contract"
)

// Option configures an Error during construction.
type Option func(*Error)

// WithID sets the identifier instead of generating one. Empty ids are ignored.
func WithID(id string) Option {
	return func(e *Error) {
		if id != "" {
			e.id = id
		}
	}
}

// WithIDGenerator sets the source used when no explicit id is given.
func WithIDGenerator(g contract.IDGenerator) Option { return func(e *Error) { e.gen = g } }

// WithCorrelationID sets the identifier handed back by an external service.
func WithCorrelationID(id string) Option { return func(e *Error) { e.correlationID = id } }

// WithSpanID sets the tracing span identifier.
func WithSpanID(id string) Option { return func(e *Error) { e.spanID = id } }

// WithTraceID sets the tracing trace identifier.
func WithTraceID(id string) Option { return func(e *Error) { e.traceID = id } }

// WithRequestID sets the identifier of the failed inbound request.
func WithRequestID(id string) Option { return func(e *Error) { e.requestID = id } }

// WithSpanContext copies the trace and span ids of the active span in ctx.
// Nothing is copied when ctx carries no valid span context.
func WithSpanContext(ctx context.Context) Option {
	return func(e *Error) {
		sc := trace.SpanContextFromContext(ctx)
		if !sc.IsValid() {
			return
		}

		e.traceID = sc.TraceID().String()
		e.spanID = sc.SpanID().String()
	}
}

// WithCode appends classification codes.
func WithCode(codes ...contract.Code) Option {
	return func(e *Error) { e.codes = append(e.codes, codes...) }
}

// WithCodes replaces the classification codes. The slice is copied.
func WithCodes(codes []contract.Code) Option {
	return func(e *Error) {
		e.codes = append([]contract.Code(nil), codes...)
	}
}

// WithParam sets a single parameter.
func WithParam(k string, v any) Option { return func(e *Error) { e.params[k] = v } }

// WithParams replaces the whole parameter bag. The provided map is defensively cloned.
func WithParams(params map[string]any) Option {
	return func(e *Error) { e.params = cloneMap(params) }
}

// WithCause sets the underlying cause returned by Unwrap().
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }
