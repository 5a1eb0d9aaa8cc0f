// Package metrics holds the Prometheus collectors for bill calculations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"energy-billing/internal/errors"
)

var (
	BillsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_billing_bills_total",
			Help: "Total number of bills computed per tariff flag",
		},
		[]string{"flag"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_billing_validation_failures_total",
			Help: "Total number of rejected inputs per error type",
		},
		[]string{"type"},
	)

	InvariantViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "energy_billing_invariant_violations_total",
			Help: "Total number of bills that failed the consistency check",
		},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "energy_billing_request_duration_seconds",
			Help:    "Request duration in seconds per path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_billing_request_errors_total",
			Help: "Total number of error responses per path and status code",
		},
		[]string{"path", "code"},
	)
)

// RecordBill counts a successfully computed bill
func RecordBill(flag string) {
	BillsTotal.WithLabelValues(flag).Inc()
}

// RecordFailure counts a failed calculation by its error class
func RecordFailure(err error) {
	switch t := errors.TypeOf(err); {
	case t == errors.TypeInvariant:
		InvariantViolationsTotal.Inc()
	case errors.IsValidation(err):
		ValidationFailuresTotal.WithLabelValues(string(t)).Inc()
	}
}

// ObserveRequest records latency, and an error count for status >= 400
func ObserveRequest(path string, startedAt time.Time, status int) {
	RequestDurationSeconds.WithLabelValues(path).Observe(time.Since(startedAt).Seconds())
	if status >= 400 {
		RequestErrorsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	}
}
