package exception_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/next-trace/scg-exception/contract"
	"github.com/next-trace/scg-exception/exception"
	"github.com/next-trace/scg-exception/idgen"
)

var (
	userNotFound  = exception.NewCode("FOO_01", "User not found.")
	accountLocked = exception.NewCode("FOO_02", "Users account has been locked.")
)

func TestNew_GeneratesIDAndKeepsFields(t *testing.T) {
	t.Parallel()

	e := exception.New("Failed to log the user in",
		exception.WithCode(userNotFound),
		exception.WithParam("user", "imam"),
	)

	assert.Equal(t, "Failed to log the user in", e.Message())
	assert.Equal(t, "Failed to log the user in", e.Error())
	assert.Equal(t, "imam", e.Params()["user"])
	require.Len(t, e.Codes(), 1)
	assert.Equal(t, userNotFound, e.Codes()[0])
	assert.NotEmpty(t, e.ExceptionID())
	assert.Empty(t, e.CorrelationID())
	assert.Nil(t, e.Unwrap())
}

func TestIDOverrides(t *testing.T) {
	t.Parallel()

	e := exception.New("boom", exception.WithID("abc"))
	assert.Equal(t, "abc", e.ExceptionID())

	e = exception.New("boom", exception.WithID(""), exception.WithIDGenerator(idgen.Static("gen")))
	assert.Equal(t, "gen", e.ExceptionID(), "empty id must fall back to the generator")

	e.SetID("")
	assert.Equal(t, "gen", e.ExceptionID(), "SetID must ignore empty ids")

	e.SetID("later")
	assert.Equal(t, "later", e.ExceptionID())
}

func TestCodes_OrderAndDuplicatesKept(t *testing.T) {
	t.Parallel()

	e := exception.New("x",
		exception.WithCode(accountLocked, userNotFound),
		exception.WithCode(accountLocked),
	)
	e.AddCode(userNotFound)

	want := []contract.Code{accountLocked, userNotFound, accountLocked, userNotFound}
	assert.Equal(t, want, e.Codes())

	got := e.Codes()
	got[0] = userNotFound
	assert.Equal(t, accountLocked, e.Codes()[0], "Codes must return a copy")

	e = exception.New("x", exception.WithCode(userNotFound), exception.WithCodes([]contract.Code{accountLocked}))
	assert.Equal(t, []contract.Code{accountLocked}, e.Codes())
}

func TestParams_ReplaceMergeAndClone(t *testing.T) {
	t.Parallel()

	src := map[string]any{"a": 1, "nested": map[string]any{"x": 1}}
	e := exception.New("x", exception.WithParam("dropped", true), exception.WithParams(src))

	src["a"] = 2
	assert.Equal(t, map[string]any{"a": 1, "nested": map[string]any{"x": 1}}, e.Params())

	p := e.Params()
	p["new"] = 1
	p["nested"].(map[string]any)["x"] = 9
	assert.NotContains(t, e.Params(), "new")
	assert.Equal(t, 1, e.Params()["nested"].(map[string]any)["x"])

	e.WithParamKV("b", 2).WithParamMap(map[string]any{"a": 3, "c": 4})
	assert.Equal(t, 3, e.Params()["a"])
	assert.Equal(t, 2, e.Params()["b"])
	assert.Equal(t, 4, e.Params()["c"])
}

func TestEmptyParamsAreNotNil(t *testing.T) {
	t.Parallel()

	e := exception.New("x")
	assert.NotNil(t, e.Params())
	assert.Empty(t, e.Params())
	assert.Nil(t, e.Codes())
}

func TestWrapAndFrom(t *testing.T) {
	t.Parallel()

	cause := errors.New("row not found")

	w := exception.Wrap(cause, "customer lookup failed")
	assert.ErrorIs(t, w, cause)
	assert.Equal(t, "customer lookup failed", w.Message())
	assert.Equal(t, "customer lookup failed: row not found", w.Error())

	f := exception.From(cause)
	assert.Equal(t, "row not found", f.Message())
	assert.Equal(t, "row not found", f.Error())
	assert.Same(t, cause, f.Unwrap())

	empty := exception.Wrap(cause, "")
	assert.Equal(t, "row not found", empty.Error())

	root := exception.From(nil)
	assert.Empty(t, root.Message())
	assert.NotEmpty(t, root.ExceptionID())
}

func TestEnsureAndAs(t *testing.T) {
	t.Parallel()

	assert.Nil(t, exception.Ensure(nil))

	e := exception.New("domain")
	wrapped := fmt.Errorf("handler: %w", e)

	assert.Same(t, e, exception.Ensure(e))
	assert.Same(t, e, exception.Ensure(wrapped))

	got, ok := exception.As(wrapped)
	require.True(t, ok)
	assert.Same(t, e, got)

	plain := errors.New("boom")
	ensured := exception.Ensure(plain, exception.WithCode(userNotFound))
	require.NotNil(t, ensured)
	assert.ErrorIs(t, ensured, plain)
	assert.Equal(t, "boom", ensured.Message())
	assert.Len(t, ensured.Codes(), 1)

	_, ok = exception.As(plain)
	assert.False(t, ok)
}

func TestCorrelationSpanTraceRequestIDs(t *testing.T) {
	t.Parallel()

	e := exception.New("x",
		exception.WithCorrelationID("corr"),
		exception.WithSpanID("span"),
		exception.WithTraceID("trace"),
		exception.WithRequestID("ABCD12335"),
	)

	assert.Equal(t, "corr", e.CorrelationID())
	assert.Equal(t, "span", e.SpanID())
	assert.Equal(t, "trace", e.TraceID())
	assert.Equal(t, "ABCD12335", e.RequestID())

	e.SetCorrelationID("corr2").SetSpanID("span2")
	assert.Equal(t, "corr2", e.CorrelationID())
	assert.Equal(t, "span2", e.SpanID())
}

func TestWithSpanContext(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	e := exception.New("x", exception.WithSpanContext(ctx))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", e.TraceID())
	assert.Equal(t, "00f067aa0ba902b7", e.SpanID())

	e = exception.New("x", exception.WithSpanID("keep"), exception.WithSpanContext(context.Background()))
	assert.Equal(t, "keep", e.SpanID(), "invalid span context must not overwrite")
}

func TestNilReceiverBehaviors(t *testing.T) {
	t.Parallel()

	var e *exception.Error

	assert.Equal(t, "<nil>", e.Error())
	assert.Nil(t, e.SetID("x"))
	assert.Nil(t, e.SetCorrelationID("x"))
	assert.Nil(t, e.SetSpanID("x"))
	assert.Nil(t, e.AddCode(userNotFound))
	assert.Nil(t, e.WithParamKV("a", 1))
	assert.Nil(t, e.WithParamMap(map[string]any{"a": 1}))

	assert.Empty(t, e.ExceptionID())
	assert.Empty(t, e.Message())
	assert.Empty(t, e.CorrelationID())
	assert.Empty(t, e.SpanID())
	assert.Empty(t, e.TraceID())
	assert.Empty(t, e.RequestID())
	assert.Nil(t, e.Codes())
	assert.NotNil(t, e.Params())
	assert.Empty(t, e.Params())
	assert.NoError(t, e.Unwrap())
}

// FuzzWithParamKV (no panics, simple expectations).
func FuzzWithParamKV(f *testing.F) {
	f.Add("k", "v")
	f.Add("", "")
	f.Fuzz(func(t *testing.T, k, v string) {
		e := exception.New("ok").WithParamKV(k, v)
		got := e.Params()

		if got[k] != v {
			t.Fatalf("expected %q=%q, got %v", k, v, got[k])
		}

		got[k] = "mut"
		if v != "mut" && e.Params()[k] == "mut" {
			t.Fatalf("params mutation leaked into internal map")
		}
	})
}
