package report

import (
	"errors"
	"regexp"

	"github.com/next-trace/scg-exception/contract"
)

// DefaultMaxDepth bounds chain walks so that cyclic cause chains terminate.
const DefaultMaxDepth = 256

// correlationPattern matches version 4 UUIDs. Hex groups are lowercase only; the
// variant nibble also accepts upper-case A and B.
var correlationPattern = regexp.MustCompile(`[a-f0-9]{8}-[a-f0-9]{4}-4[a-f0-9]{3}-[89aAbB][a-f0-9]{3}-[a-f0-9]{12}`)

// FindCorrelation returns the first UUID v4 shaped token in text, or "".
func FindCorrelation(text string) string {
	if text == "" {
		return ""
	}

	return correlationPattern.FindString(text)
}

// Chain walks err and its causes, root first, with the default depth bound.
func Chain(err error) []ChainEntry {
	return ChainDepth(err, DefaultMaxDepth)
}

// ChainDepth walks err and its causes, stopping after maxDepth nodes.
// A maxDepth of zero or less walks until the chain ends.
func ChainDepth(err error, maxDepth int) []ChainEntry {
	chain := []ChainEntry{}

	for node := err; node != nil; node = errors.Unwrap(node) {
		if maxDepth > 0 && len(chain) >= maxDepth {
			break
		}

		chain = append(chain, entryFor(node))
	}

	return chain
}

func entryFor(node error) ChainEntry {
	msg := messageOf(node)

	if id, ok := node.(contract.Identified); ok {
		return ChainEntry{CorrelationID: id.ExceptionID(), Message: msg}
	}

	return ChainEntry{CorrelationID: FindCorrelation(msg), Message: msg}
}

// messageOf prefers a node's own message over Error(), which may include its causes.
func messageOf(node error) string {
	if m, ok := node.(interface{ Message() string }); ok {
		return m.Message()
	}

	return node.Error()
}
