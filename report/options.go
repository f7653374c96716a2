package report

import (
	"time"

	"github.com/next-trace/scg-exception/contract"
)

// Option configures how a Builder derives ids, timestamps and chains.
type Option func(*settings)

type settings struct {
	gen      contract.IDGenerator
	now      func() time.Time
	maxDepth int
}

func newSettings(opts []Option) settings {
	s := settings{
		now:      time.Now,
		maxDepth: DefaultMaxDepth,
	}

	for _, o := range opts {
		o(&s)
	}

	return s
}

// WithIDGenerator sets the source of report ids. Defaults to idgen.UUID.
func WithIDGenerator(g contract.IDGenerator) Option { return func(s *settings) { s.gen = g } }

// WithClock sets the function used to stamp DateTime. Nil keeps time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxDepth bounds the number of chain entries. Zero or less disables the bound.
func WithMaxDepth(n int) Option { return func(s *settings) { s.maxDepth = n } }
