package observability

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Weather provider call rate by outcome. Watch for: error vs success ratio.
	ProviderCallsTotal *prometheus.CounterVec

	// Provider latency per call. Watch for: p95 > 2s (upstream degradation).
	ProviderCallDuration *prometheus.HistogramVec

	// Observation cache hits. Hit rate = hits / (hits + providerCallsTotal).
	CacheHitsTotal prometheus.Counter

	// Observation cache failures by operation. Watch for: backend outages.
	CacheErrorsTotal *prometheus.CounterVec

	// Days successfully fetched into historical windows.
	WindowDaysFetchedTotal prometheus.Counter

	// Days dropped from historical windows (provider absence). Watch for:
	// sustained growth = patchy provider data.
	WindowDaysDroppedTotal prometheus.Counter

	// Claims validated, labeled by verdict class (validated, partial, invalid, unable).
	ClaimsValidatedTotal *prometheus.CounterVec

	// End-to-end claim validation latency, including all provider calls.
	ClaimValidationDuration prometheus.Histogram

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherProviderCallsTotal",
			Help: "Total number of weather provider calls",
		},
		[]string{"status"},
	)
	ProviderCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherProviderDurationSeconds",
			Help:    "Weather provider latency in seconds (per call)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "observationCacheHitsTotal",
			Help: "Total number of observation cache hits",
		},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "observationCacheErrorsTotal",
			Help: "Total number of observation cache errors",
		},
		[]string{"operation"},
	)
	WindowDaysFetchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "windowDaysFetchedTotal",
			Help: "Days successfully fetched into historical windows",
		},
	)
	WindowDaysDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "windowDaysDroppedTotal",
			Help: "Days dropped from historical windows due to provider failures",
		},
	)
	ClaimsValidatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimsValidatedTotal",
			Help: "Total number of claims validated, by verdict class",
		},
		[]string{"verdict"},
	)
	ClaimValidationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "claimValidationDurationSeconds",
			Help:    "End-to-end claim validation latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by the rate limiter",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		ProviderCallsTotal,
		ProviderCallDuration,
		CacheHitsTotal,
		CacheErrorsTotal,
		WindowDaysFetchedTotal,
		WindowDaysDroppedTotal,
		ClaimsValidatedTotal,
		ClaimValidationDuration,
		RateLimitDeniedTotal,
	)
}

// ObserveClaimValidated records one finished validation, collapsing the
// verdict string to a low-cardinality class label.
func ObserveClaimValidated(status string, duration time.Duration) {
	ClaimsValidatedTotal.WithLabelValues(VerdictClass(status)).Inc()
	ClaimValidationDuration.Observe(duration.Seconds())
}

// VerdictClass maps a verdict string to its metric label: validated,
// partial, invalid, or unable.
func VerdictClass(status string) string {
	switch {
	case strings.HasPrefix(status, "Validated"):
		return "validated"
	case strings.HasPrefix(status, "Partially"):
		return "partial"
	case strings.HasPrefix(status, "Invalid"):
		return "invalid"
	default:
		return "unable"
	}
}

// MetricsHandler returns the HTTP handler for the /metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
