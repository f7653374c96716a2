// Package contract exposes the minimal interfaces the report builder depends on.
//
// Domain errors, classification codes and identifier sources live behind these
// interfaces so that callers may bring their own implementations. The concrete
// types shipped with this module are exception.Error, exception.Code and idgen.Func.
package contract

// Code is a classification code: a short machine-facing code plus a human description.
type Code interface {
	Code() string
	Description() string
}

// IDGenerator produces fresh unique identifiers.
//
// Implementations must be safe to call from concurrent error paths.
type IDGenerator interface {
	NewID() string
}

// Identified is implemented by errors that carry their own occurrence identifier.
// The chain walker uses it as the correlation value for the node.
type Identified interface {
	ExceptionID() string
}

// DomainError is the read-only surface of a business-classified error.
//
// Implementations must:
//   - Return a non-empty ExceptionID once constructed.
//   - Return defensive copies from Codes and Params (never the internal values).
//   - Support errors.Unwrap via Unwrap().
type DomainError interface {
	error
	Identified
	Message() string
	CorrelationID() string
	SpanID() string
	TraceID() string
	RequestID() string
	Codes() []Code
	// Params returns a defensive copy; NEVER return the internal map directly.
	Params() map[string]any
	Unwrap() error
}
