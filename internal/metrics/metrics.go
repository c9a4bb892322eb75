// Package metrics holds the prometheus collectors for tool calls and
// webhook deliveries. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
)

// Metrics groups the collectors.
type Metrics struct {
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	webhook      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors with reg and serves them from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kapso_tool_calls_total",
				Help: "Total number of MCP tool calls by outcome",
			},
			[]string{"tool", "outcome"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kapso_tool_call_duration_seconds",
				Help:    "Duration of MCP tool calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		webhook: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kapso_webhook_events_total",
				Help: "Total number of webhook deliveries by outcome",
			},
			[]string{"outcome"},
		),
		gatherer: g,
	}
	reg.MustRegister(m.toolCalls, m.toolDuration, m.webhook)
	return m
}

// ObserveToolCall records one tool call.
func (m *Metrics) ObserveToolCall(tool string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// WebhookEvent records one webhook delivery.
func (m *Metrics) WebhookEvent(outcome string) {
	if m == nil {
		return
	}
	m.webhook.WithLabelValues(outcome).Inc()
}

// Handler serves the collectors in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
