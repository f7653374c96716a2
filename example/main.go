// Package main demonstrates usage of the scg-exception packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/next-trace/scg-exception/config"
	"github.com/next-trace/scg-exception/exception"
	"github.com/next-trace/scg-exception/logging"
	"github.com/next-trace/scg-exception/metrics"
	"github.com/next-trace/scg-exception/render"
	"github.com/next-trace/scg-exception/report"
)

var accountLocked = exception.NewCode("FOO_02", "Users account has been locked.")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Log.Logging())

	// Direct construction
	cause := errors.New("profile service failed, exception Id d99306bc-4b04-4a34-b7e7-f5554383f570")
	e := exception.Wrap(cause, "customer 42 could not log in",
		exception.WithCode(accountLocked),
		exception.WithParam("customer_id", "42"),
	)

	r := report.New(cfg.Application, e, report.WithMaxDepth(cfg.MaxChainDepth)).
		WithHelpLink(cfg.HelpLink).
		WithHTTPStatus(http.StatusLocked, http.StatusText(http.StatusLocked)).
		Build()

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid format")
	}

	if err := render.Encode(os.Stdout, r, format); err != nil {
		logger.Fatal().Err(err).Msg("encode report")
	}

	// Serve the same flow over HTTP, with metrics and spans.
	reg := prometheus.NewRegistry()

	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("register metrics")
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	h := &handler{
		cfg:    cfg,
		logger: logger,
		rec:    rec,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /customers/{id}", h.customer)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           otelhttp.NewHandler(mux, "excore.demo", otelhttp.WithTracerProvider(tp)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info().Str("addr", srv.Addr).Msg("serving demo")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

type handler struct {
	cfg    *config.Config
	logger zerolog.Logger
	rec    *metrics.Recorder
}

// customer always fails: every account is locked in the demo.
func (h *handler) customer(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)

	id := req.PathValue("id")

	err := exception.New("customer "+id+" is locked",
		exception.WithSpanContext(ctx),
		exception.WithCode(accountLocked),
		exception.WithParam("customer_id", id),
		exception.WithRequestID(req.Header.Get("X-Request-Id")),
	)

	r := report.New(h.cfg.Application, err, report.WithMaxDepth(h.cfg.MaxChainDepth)).
		WithHelpLink(h.cfg.HelpLink).
		WithPath(req.URL.Path).
		WithHTTPStatus(http.StatusLocked, http.StatusText(http.StatusLocked)).
		Build()

	report.Annotate(span, r)
	h.rec.Observe(r)
	h.logger.Warn().Object("report", r).Msg("request failed")

	if err := render.WriteHTTP(w, r); err != nil {
		h.logger.Error().Err(err).Msg("write report")
	}
}
