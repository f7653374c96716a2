package report

import "time"

const (
	// Metadata tags every report built by this package.
	Metadata = "exception-core-model"

	// DefaultMessage replaces an empty error message.
	DefaultMessage = "Unable to complete request."
)

// ChainEntry summarises one node of an error chain.
type ChainEntry struct {
	CorrelationID string `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
	Message       string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Report is the diagnostic payload returned at a service boundary.
//
// The json names are the wire contract with transport renderers.
type Report struct {
	ApplicationName       string            `json:"applicationName,omitempty" yaml:"applicationName,omitempty"`
	ExceptionID           string            `json:"exceptionId,omitempty" yaml:"exceptionId,omitempty"`
	RequestID             string            `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	TraceID               string            `json:"traceId,omitempty" yaml:"traceId,omitempty"`
	SpanID                string            `json:"spanId,omitempty" yaml:"spanId,omitempty"`
	Message               string            `json:"message,omitempty" yaml:"message,omitempty"`
	ExceptionClass        string            `json:"exceptionClass,omitempty" yaml:"exceptionClass,omitempty"`
	Path                  string            `json:"path,omitempty" yaml:"path,omitempty"`
	SessionID             string            `json:"sessionId,omitempty" yaml:"sessionId,omitempty"`
	HelpLink              string            `json:"helpLink,omitempty" yaml:"helpLink,omitempty"`
	Metadata              string            `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	RequestBody           string            `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	HTTPStatusCode        int               `json:"httpStatusCode" yaml:"httpStatusCode"`
	HTTPStatusDescription string            `json:"httpStatusDescription,omitempty" yaml:"httpStatusDescription,omitempty"`
	Params                map[string]any    `json:"params" yaml:"params"`
	BusinessCodes         map[string]string `json:"businessCodes" yaml:"businessCodes"`
	Context               map[string]any    `json:"context" yaml:"context"`
	ExceptionChain        []ChainEntry      `json:"exceptionChain" yaml:"exceptionChain"`
	DateTime              time.Time         `json:"dateTime" yaml:"dateTime"`
}

// Clone returns a copy of r that shares no maps or slices with it.
func (r Report) Clone() Report {
	out := r
	out.Params = cloneMap(r.Params)
	out.Context = cloneMap(r.Context)

	out.BusinessCodes = make(map[string]string, len(r.BusinessCodes))
	for k, v := range r.BusinessCodes {
		out.BusinessCodes[k] = v
	}

	out.ExceptionChain = make([]ChainEntry, len(r.ExceptionChain))
	copy(out.ExceptionChain, r.ExceptionChain)

	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))

	for k, v := range in {
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}

		out[k] = v
	}

	return out
}
