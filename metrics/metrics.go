// Package metrics counts built reports with Prometheus.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/next-trace/scg-exception/report"
)

// Recorder holds the report metrics. A nil *Recorder ignores observations.
type Recorder struct {
	reportsTotal *prometheus.CounterVec
	codesTotal   *prometheus.CounterVec
	chainLength  *prometheus.HistogramVec
}

// NewRecorder creates the report metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exception_reports_total",
				Help: "Total number of error reports built, by application, error type and HTTP status",
			},
			[]string{"application", "exception_class", "status"},
		),

		codesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exception_business_codes_total",
				Help: "Total number of classification codes seen on built reports",
			},
			[]string{"application", "code"},
		),

		chainLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exception_chain_length",
				Help:    "Number of entries in the exception chain of built reports",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"application"},
		),
	}

	collectors := []prometheus.Collector{r.reportsTotal, r.codesTotal, r.chainLength}

	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			// undo the partial registration
			for _, registered := range collectors[:i] {
				reg.Unregister(registered)
			}

			return nil, fmt.Errorf("register report metrics: %w", err)
		}
	}

	return r, nil
}

// Observe records one built report.
func (r *Recorder) Observe(rep report.Report) {
	if r == nil {
		return
	}

	status := "unset"
	if rep.HTTPStatusCode != 0 {
		status = strconv.Itoa(rep.HTTPStatusCode)
	}

	r.reportsTotal.WithLabelValues(rep.ApplicationName, rep.ExceptionClass, status).Inc()

	for code := range rep.BusinessCodes {
		r.codesTotal.WithLabelValues(rep.ApplicationName, code).Inc()
	}

	r.chainLength.WithLabelValues(rep.ApplicationName).Observe(float64(len(rep.ExceptionChain)))
}
