package report

import (
	"fmt"
	"reflect"
	"time"

	"github.com/next-trace/scg-exception/contract"
	"github.com/next-trace/scg-exception/idgen"
)

// Builder assembles a Report. Every With* method mutates the builder and returns it
// so that calls can be chained; Build materialises an independent Report value.
type Builder struct {
	r Report
}

// NewBuilder returns a builder for a report that is not derived from an error.
// Only the metadata tag and empty collections are set.
func NewBuilder() *Builder {
	return &Builder{r: Report{
		Metadata:       Metadata,
		Params:         map[string]any{},
		BusinessCodes:  map[string]string{},
		Context:        map[string]any{},
		ExceptionChain: []ChainEntry{},
	}}
}

// New starts a report for err raised in applicationName.
//
// When err itself is a contract.DomainError its id seeds the report id and its codes,
// params and tracing ids are copied. Otherwise a fresh id is generated. In both cases
// the full cause chain is recorded, root first.
func New(applicationName string, err error, opts ...Option) *Builder {
	s := newSettings(opts)
	gen := idgen.Or(s.gen)

	b := NewBuilder().
		WithApplicationName(applicationName).
		WithDateTime(s.now()).
		WithChain(ChainDepth(err, s.maxDepth))

	if err == nil {
		return b.WithExceptionID(gen.NewID()).WithException("", DefaultMessage)
	}

	de, ok := err.(contract.DomainError)
	if !ok {
		return b.WithExceptionID(gen.NewID()).
			WithException(className(err), messageOr(err.Error()))
	}

	id := de.ExceptionID()
	if id == "" {
		id = gen.NewID()
	}

	b.WithExceptionID(id).
		WithException(className(err), messageOr(de.Message())).
		WithBusinessCodes(de.Codes()).
		WithParams(de.Params())

	if v := de.SpanID(); v != "" {
		b.WithSpanID(v)
	}

	if v := de.TraceID(); v != "" {
		b.WithTraceID(v)
	}

	if v := de.RequestID(); v != "" {
		b.WithRequestID(v)
	}

	return b
}

func className(err error) string { return fmt.Sprintf("%T", err) }

func messageOr(msg string) string {
	if msg == "" {
		return DefaultMessage
	}

	return msg
}

// ------ fluent setters

func (b *Builder) WithApplicationName(name string) *Builder {
	b.r.ApplicationName = name
	return b
}

func (b *Builder) WithExceptionID(id string) *Builder {
	b.r.ExceptionID = id
	return b
}

func (b *Builder) WithRequestID(id string) *Builder {
	b.r.RequestID = id
	return b
}

func (b *Builder) WithTraceID(id string) *Builder {
	b.r.TraceID = id
	return b
}

func (b *Builder) WithSpanID(id string) *Builder {
	b.r.SpanID = id
	return b
}

func (b *Builder) WithPath(path string) *Builder {
	b.r.Path = path
	return b
}

func (b *Builder) WithSessionID(id string) *Builder {
	b.r.SessionID = id
	return b
}

func (b *Builder) WithHelpLink(link string) *Builder {
	b.r.HelpLink = link
	return b
}

// WithHTTPStatus sets the status code and its description together.
func (b *Builder) WithHTTPStatus(code int, description string) *Builder {
	b.r.HTTPStatusCode = code
	b.r.HTTPStatusDescription = description

	return b
}

// WithException sets the error type name and message.
func (b *Builder) WithException(class, message string) *Builder {
	b.r.ExceptionClass = class
	b.r.Message = message

	return b
}

func (b *Builder) WithRequestBody(body string) *Builder {
	b.r.RequestBody = body
	return b
}

func (b *Builder) WithMetadata(metadata string) *Builder {
	b.r.Metadata = metadata
	return b
}

func (b *Builder) WithDateTime(t time.Time) *Builder {
	b.r.DateTime = t
	return b
}

func (b *Builder) WithParam(k string, v any) *Builder {
	b.r.Params[k] = v
	return b
}

// WithParams merges params into the report parameters; later writes win.
func (b *Builder) WithParams(params map[string]any) *Builder {
	for k, v := range params {
		b.r.Params[k] = v
	}

	return b
}

// WithBusinessCode records code and its description. Nil codes, including nil
// pointers behind the interface, are skipped.
func (b *Builder) WithBusinessCode(code contract.Code) *Builder {
	if isNilCode(code) {
		return b
	}

	b.r.BusinessCodes[code.Code()] = code.Description()

	return b
}

func isNilCode(code contract.Code) bool {
	if code == nil {
		return true
	}

	v := reflect.ValueOf(code)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// WithBusinessCodes flattens codes into the code map. A code seen twice keeps the
// description of its last occurrence.
func (b *Builder) WithBusinessCodes(codes []contract.Code) *Builder {
	for _, c := range codes {
		b.WithBusinessCode(c)
	}

	return b
}

func (b *Builder) WithContext(k string, v any) *Builder {
	b.r.Context[k] = v
	return b
}

// WithContextMap merges m into the report context. Existing keys are overwritten.
func (b *Builder) WithContextMap(m map[string]any) *Builder {
	for k, v := range m {
		b.r.Context[k] = v
	}

	return b
}

// WithChainEntry appends a single entry to the exception chain.
func (b *Builder) WithChainEntry(e ChainEntry) *Builder {
	b.r.ExceptionChain = append(b.r.ExceptionChain, e)
	return b
}

// WithChain replaces the exception chain.
func (b *Builder) WithChain(chain []ChainEntry) *Builder {
	b.r.ExceptionChain = append(make([]ChainEntry, 0, len(chain)), chain...)
	return b
}

// Build returns the assembled report. Later builder calls do not affect it.
func (b *Builder) Build() Report {
	return b.r.Clone()
}
