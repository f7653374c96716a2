// Package render encodes reports for transport: JSON or YAML documents, and JSON
// HTTP responses carrying the report's status code.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/next-trace/scg-exception/report"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// defaultHTTPStatus is used when a report carries no status code.
const defaultHTTPStatus = http.StatusInternalServerError

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// Encode writes r to w in format f.
func Encode(w io.Writer, r report.Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteHTTP writes r as a JSON response. The status is r.HTTPStatusCode, or 500
// when the report has none or it is not a valid three-digit code.
func WriteHTTP(w http.ResponseWriter, r report.Report) error {
	status := r.HTTPStatusCode
	if status < 100 || status > 999 {
		status = defaultHTTPStatus
	}

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}
