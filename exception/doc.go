// Package exception provides the domain error type raised by application code.
//
// It exposes a single concrete type Error that implements contract.DomainError and
// integrates with the standard library's errors helpers (Is/As) via Unwrap.
//
// Key characteristics:
//   - A unique occurrence id, generated at construction unless one is supplied
//   - Optional correlation, span, trace and request identifiers
//   - Ordered classification codes (duplicates are kept)
//   - A parameter bag with defensive cloning on read
//   - Optional underlying cause preserved for errors.Is / errors.As
//
// Errors are built with New, Wrap or From plus With* options; the Set*, AddCode and
// WithParam* methods allow chained mutation after construction.
package exception
