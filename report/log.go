package report

import "github.com/rs/zerolog"

var (
	_ zerolog.LogObjectMarshaler = Report{}
	_ zerolog.LogObjectMarshaler = ChainEntry{}
	_ zerolog.LogArrayMarshaler  = chainArray(nil)
)

// MarshalZerologObject lets a report be logged with Event.Object.
// The request body is never logged.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("application_name", r.ApplicationName).
		Str("exception_id", r.ExceptionID).
		Str("exception_class", r.ExceptionClass).
		Str("message", r.Message).
		Str("metadata", r.Metadata).
		Time("date_time", r.DateTime)

	optStr(e, "request_id", r.RequestID)
	optStr(e, "trace_id", r.TraceID)
	optStr(e, "span_id", r.SpanID)
	optStr(e, "path", r.Path)
	optStr(e, "session_id", r.SessionID)
	optStr(e, "help_link", r.HelpLink)

	if r.HTTPStatusCode != 0 {
		e.Int("http_status_code", r.HTTPStatusCode)
		optStr(e, "http_status_description", r.HTTPStatusDescription)
	}

	if len(r.BusinessCodes) > 0 {
		codes := zerolog.Dict()
		for k, v := range r.BusinessCodes {
			codes.Str(k, v)
		}
		e.Dict("business_codes", codes)
	}

	if len(r.Params) > 0 {
		e.Dict("params", zerolog.Dict().Fields(r.Params))
	}

	if len(r.Context) > 0 {
		e.Dict("context", zerolog.Dict().Fields(r.Context))
	}

	e.Array("exception_chain", chainArray(r.ExceptionChain))
}

// MarshalZerologObject writes the entry fields, omitting empty ones.
func (c ChainEntry) MarshalZerologObject(e *zerolog.Event) {
	optStr(e, "correlation_id", c.CorrelationID)
	optStr(e, "message", c.Message)
}

type chainArray []ChainEntry

func (c chainArray) MarshalZerologArray(a *zerolog.Array) {
	for _, entry := range c {
		a.Object(entry)
	}
}

func optStr(e *zerolog.Event, key, val string) {
	if val != "" {
		e.Str(key, val)
	}
}
