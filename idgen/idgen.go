// Package idgen provides identifier generators for errors and reports.
package idgen

import (
	"github.com/google/uuid"

	"github.com/next-trace/scg-exception/contract"
)

// Func adapts a plain function to contract.IDGenerator.
type Func func() string

var _ contract.IDGenerator = Func(nil)

// NewID calls f. A nil Func falls back to UUID.
func (f Func) NewID() string {
	if f == nil {
		return uuid.NewString()
	}

	return f()
}

// UUID generates random version 4 UUIDs in canonical lowercase form.
var UUID contract.IDGenerator = Func(uuid.NewString)

// Static always returns id. Useful for tests and replayed reports.
func Static(id string) contract.IDGenerator {
	return Func(func() string { return id })
}

// Or returns g, or UUID when g is nil.
func Or(g contract.IDGenerator) contract.IDGenerator {
	if g == nil {
		return UUID
	}

	return g
}
