// Package metrics exposes the Prometheus collectors for the recommendation API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration covers every routed request.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundify_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundify_recommendation_requests_total",
			Help: "Recommendation requests by variant and outcome",
		},
		[]string{"variant", "outcome"},
	)

	RecommendationItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundify_recommendation_items",
			Help:    "Number of items returned per successful recommendation request",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 25, 40},
		},
		[]string{"variant"},
	)

	// CompletionDuration is measured around the provider call only.
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundify_completion_duration_seconds",
			Help:    "Latency of completion provider calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"outcome"},
	)

	AuditDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "soundify_audit_records_dropped_total",
			Help: "Audit records dropped because the worker queue was full",
		},
	)
)

// RecordHTTPRequest observes one finished HTTP request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordRecommendation counts one recommendation request and, when it
// succeeded, the number of items returned.
func RecordRecommendation(variant, outcome string, items int) {
	RecommendationRequests.WithLabelValues(variant, outcome).Inc()
	if outcome == "ok" {
		RecommendationItems.WithLabelValues(variant).Observe(float64(items))
	}
}

// RecordCompletion observes one provider call.
func RecordCompletion(err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CompletionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
