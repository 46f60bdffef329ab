// Package metrics records Prometheus metrics for the tool API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentdesk_tool_calls_total",
		Help: "Total tool invocations by tool name and outcome.",
	}, []string{"tool", "status"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "talentdesk_tool_duration_seconds",
		Help:    "Tool invocation duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool", "status"})
)

// RecordToolCall records one tool invocation. Status is "ok", "error" (a
// data-shaped precondition failure) or "fault" (a store/internal failure).
func RecordToolCall(tool, status string, seconds float64) {
	toolCalls.WithLabelValues(tool, status).Inc()
	toolDuration.WithLabelValues(tool, status).Observe(seconds)
}
