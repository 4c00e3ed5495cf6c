package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	llmCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_calls_total",
			Help: "Completion calls per stage and outcome (ok/fallback).",
		},
		[]string{"stage", "outcome"},
	)

	llmCallDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_ms",
			Help:    "Completion call latency in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
		},
		[]string{"stage"},
	)

	jobSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_search_total",
			Help: "Job board searches per source and outcome (ok/empty/error).",
		},
		[]string{"source", "outcome"},
	)

	jobSearchListings = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_search_listings",
			Help:    "Listings returned per job board search.",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 60, 100},
		},
		[]string{"source"},
	)

	resumeUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_uploads_total",
			Help: "Resume uploads by outcome (extracted/unreadable/rejected).",
		},
		[]string{"outcome"},
	)

	httpPanicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_total",
			Help: "Handler panics recovered per route.",
		},
		[]string{"route"},
	)

	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter per group.",
		},
		[]string{"group"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			llmCallsTotal, llmCallDurationMs,
			jobSearchTotal, jobSearchListings,
			resumeUploadsTotal,
			httpPanicsTotal, rateLimitedTotal,
		)
	})
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	MustRegister()
	return gin.WrapH(promhttp.Handler())
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ObserveLLMCall records one guarded completion call.
func ObserveLLMCall(stage string, ok bool, elapsed time.Duration) {
	outcome := "ok"
	if !ok {
		outcome = "fallback"
	}
	llmCallsTotal.WithLabelValues(norm(stage), outcome).Inc()
	llmCallDurationMs.WithLabelValues(norm(stage)).Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// ObserveJobSearch records one job board search. A non-nil err counts as an error
// regardless of count.
func ObserveJobSearch(source string, count int, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case count == 0:
		outcome = "empty"
	}
	jobSearchTotal.WithLabelValues(norm(source), outcome).Inc()
	jobSearchListings.WithLabelValues(norm(source)).Observe(float64(count))
}

// IncResumeUpload counts an upload by outcome.
func IncResumeUpload(outcome string) {
	resumeUploadsTotal.WithLabelValues(norm(outcome)).Inc()
}

// IncPanic counts a recovered handler panic. Unmatched routes are reported as "unmatched".
func IncPanic(route string) {
	if route == "" {
		route = "unmatched"
	}
	httpPanicsTotal.WithLabelValues(route).Inc()
}

// IncRateLimited counts a request rejected for group.
func IncRateLimited(group string) {
	rateLimitedTotal.WithLabelValues(norm(group)).Inc()
}
