package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/next-trace/scg-exception/exception"
	"github.com/next-trace/scg-exception/render"
	"github.com/next-trace/scg-exception/report"
)

func sample(status int) report.Report {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := exception.Wrap(errors.New("db down"), "lookup failed",
		exception.WithID("id-1"),
		exception.WithCode(exception.NewCode("DB_01", "Database unavailable")),
	)

	return report.New("svc", e, report.WithClock(func() time.Time { return at })).
		WithHTTPStatus(status, http.StatusText(status)).
		Build()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]render.Format{
		"json": render.FormatJSON, "JSON": render.FormatJSON,
		"yaml": render.FormatYAML, " yml ": render.FormatYAML,
	} {
		got, err := render.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := render.ParseFormat("xml")
	assert.Error(t, err)
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, render.Encode(&buf, sample(503), render.FormatJSON))

	var got report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "id-1", got.ExceptionID)
	assert.Equal(t, 503, got.HTTPStatusCode)
	assert.Equal(t, "Database unavailable", got.BusinessCodes["DB_01"])
	assert.Len(t, got.ExceptionChain, 2)
}

func TestEncode_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, render.Encode(&buf, sample(503), render.FormatYAML))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "id-1", doc["exceptionId"])
	assert.Equal(t, 503, doc["httpStatusCode"])
	assert.Equal(t, map[string]any{"DB_01": "Database unavailable"}, doc["businessCodes"])
}

func TestEncode_UnknownFormat(t *testing.T) {
	t.Parallel()

	assert.Error(t, render.Encode(&bytes.Buffer{}, sample(500), render.Format("xml")))
}

func TestWriteHTTP(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, render.WriteHTTP(rec, sample(http.StatusConflict)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "lookup failed", got["message"])
}

func TestWriteHTTP_DefaultsTo500(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, render.WriteHTTP(rec, report.New("svc", errors.New("x")).Build()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteHTTP_InvalidStatusFallsBackTo500(t *testing.T) {
	t.Parallel()

	for _, status := range []int{-1, 42, 99, 1000} {
		rec := httptest.NewRecorder()
		r := report.New("svc", errors.New("x")).WithHTTPStatus(status, "bogus").Build()

		require.NotPanics(t, func() { require.NoError(t, render.WriteHTTP(rec, r)) })
		assert.Equal(t, http.StatusInternalServerError, rec.Code, status)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, float64(status), got["httpStatusCode"], "body keeps the reported status")
	}
}
