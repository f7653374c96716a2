package exception

import (
	"github.com/next-trace/scg-exception/contract"
	"github.com/next-trace/scg-exception/idgen"
)

// Error is a business-classified failure carrying correlation metadata.
//
// Fields:
//   - ID:            occurrence identifier, generated at construction (never empty)
//   - CorrelationID: identifier handed back by an external service, if any
//   - SpanID/TraceID: distributed tracing identifiers
//   - RequestID:     identifier of the inbound request that failed
//   - Codes:         ordered classification codes, duplicates kept
//   - Params:        arbitrary key/value data describing the failure
type Error struct {
	id            string
	correlationID string
	spanID        string
	traceID       string
	requestID     string
	message       string
	codes         []contract.Code
	params        map[string]any
	cause         error

	// only consulted while options are applied
	gen contract.IDGenerator
}

// compile-time guarantee that *Error implements contract.DomainError
var _ contract.DomainError = (*Error)(nil)

// ------ standard error interface

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.cause != nil {
		c := e.cause.Error()
		switch {
		case e.message == "":
			return c
		case c != e.message:
			return e.message + ": " + c
		}
	}

	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// ------ contract.DomainError getters (a nil *Error reports zero values)

func (e *Error) ExceptionID() string {
	if e == nil {
		return ""
	}

	return e.id
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) CorrelationID() string {
	if e == nil {
		return ""
	}

	return e.correlationID
}

func (e *Error) SpanID() string {
	if e == nil {
		return ""
	}

	return e.spanID
}

func (e *Error) TraceID() string {
	if e == nil {
		return ""
	}

	return e.traceID
}

func (e *Error) RequestID() string {
	if e == nil {
		return ""
	}

	return e.requestID
}

// Codes returns a copy of the classification codes in insertion order.
func (e *Error) Codes() []contract.Code {
	if e == nil || len(e.codes) == 0 {
		return nil
	}

	out := make([]contract.Code, len(e.codes))
	copy(out, e.codes)

	return out
}

// Params returns a copy of the parameter bag. Nested string-keyed maps are copied too.
func (e *Error) Params() map[string]any {
	if e == nil {
		return map[string]any{}
	}

	return cloneMap(e.params)
}

// ------ core constructors

// New creates an Error with the given message and no cause.
func New(message string, opts ...Option) *Error {
	return build(message, nil, opts)
}

// Wrap creates an Error with an explicit message on top of cause.
// A nil cause is allowed and yields a root error.
func Wrap(cause error, message string, opts ...Option) *Error {
	return build(message, cause, opts)
}

// From creates an Error whose message is taken from cause.
func From(cause error, opts ...Option) *Error {
	var message string
	if cause != nil {
		message = cause.Error()
	}

	return build(message, cause, opts)
}

func build(message string, cause error, opts []Option) *Error {
	e := &Error{
		message: message,
		cause:   cause,
		params:  map[string]any{},
	}

	for _, o := range opts {
		o(e)
	}

	if e.id == "" {
		e.id = idgen.Or(e.gen).NewID()
	}

	e.gen = nil

	return e
}

// ------ fluent helpers (chainable, mutate the receiver)

// SetID overrides the identifier. Empty ids are ignored so the error always keeps one.
func (e *Error) SetID(id string) *Error {
	if e == nil || id == "" {
		return e
	}

	e.id = id

	return e
}

// SetCorrelationID records the identifier returned by an external party.
func (e *Error) SetCorrelationID(id string) *Error {
	if e == nil {
		return nil
	}

	e.correlationID = id

	return e
}

// SetSpanID sets the tracing span identifier.
func (e *Error) SetSpanID(id string) *Error {
	if e == nil {
		return nil
	}

	e.spanID = id

	return e
}

// AddCode appends classification codes, keeping order and duplicates.
func (e *Error) AddCode(codes ...contract.Code) *Error {
	if e == nil {
		return nil
	}

	e.codes = append(e.codes, codes...)

	return e
}

// WithParamKV sets a single parameter and returns the same receiver for chaining.
func (e *Error) WithParamKV(k string, v any) *Error {
	if e == nil {
		return nil
	}

	if e.params == nil {
		e.params = map[string]any{}
	}

	e.params[k] = v

	return e
}

// WithParamMap merges m into the parameters. Existing keys are overwritten.
func (e *Error) WithParamMap(m map[string]any) *Error {
	if e == nil || len(m) == 0 {
		return e
	}

	if e.params == nil {
		e.params = map[string]any{}
	}

	for k, v := range m {
		e.params[k] = v
	}

	return e
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))

	for k, v := range in {
		// Deep-clone nested maps with string keys to avoid leaking internal references.
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}

		out[k] = v
	}

	return out
}
