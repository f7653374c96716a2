package exception

import (
	"errors"
)

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// Ensure converts any error to *Error.
//
// Behavior:
//   - nil input => nil output
//   - if err is or wraps an *Error => that *Error is returned (same pointer)
//   - otherwise err becomes the cause of a new Error that reuses its message
func Ensure(err error, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	if e, ok := As(err); ok {
		return e
	}

	return From(err, opts...)
}
