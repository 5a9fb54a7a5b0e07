// Package metrics exposes the lending counters scraped at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for LoanIssueRejected.
const (
	ReasonUnavailable = "unavailable"
	ReasonNotFound    = "not_found"
	ReasonValidation  = "validation"
	ReasonLimit       = "limit_reached"
)

var (
	LoansIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_loans_issued_total",
			Help: "Total number of books issued to readers",
		},
	)

	LoansReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_loans_returned_total",
			Help: "Total number of issues closed by a return",
		},
	)

	LoanIssueRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_loan_issue_rejected_total",
			Help: "Issue attempts rejected, by reason",
		},
		[]string{"reason"},
	)

	FinesAssessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_fines_assessed_total",
			Help: "Sum of late-return fines assessed, in currency units",
		},
	)

	OverdueIssues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_overdue_issues",
			Help: "Outstanding issues past their due date at the last reminder scan",
		},
	)

	DueSoonIssues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_due_soon_issues",
			Help: "Outstanding issues due within the reminder window at the last scan",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordIssue() { LoansIssued.Inc() }

func RecordIssueRejected(reason string) { LoanIssueRejected.WithLabelValues(reason).Inc() }

// RecordReturn counts a return and adds any fine.
func RecordReturn(fine int64) {
	LoansReturned.Inc()
	if fine > 0 {
		FinesAssessed.Add(float64(fine))
	}
}

func SetReminderGauges(overdue, dueSoon int) {
	OverdueIssues.Set(float64(overdue))
	DueSoonIssues.Set(float64(dueSoon))
}

func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
