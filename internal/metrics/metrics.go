// Package metrics provides Prometheus metrics for the dashboard API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voice_trends"

type Metrics struct {
	reg prometheus.Gatherer

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Copilot metrics
	CopilotResolutions    *prometheus.CounterVec
	CopilotRemoteFailures *prometheus.CounterVec

	// Store metrics
	StoreRecords prometheus.Gauge
}

// New registers all metrics on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"route"}),
		CopilotResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "copilot_resolutions_total",
			Help:      "Chart requests resolved, by resolution path",
		}, []string{"path"}),
		CopilotRemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "copilot_remote_failures_total",
			Help:      "Remote chart interpretation failures, by reason",
		}, []string{"reason"}),
		StoreRecords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Call records held in the current snapshot",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Resolved and RemoteFailed let Metrics observe the chart resolver.
func (m *Metrics) Resolved(path string) { m.CopilotResolutions.WithLabelValues(path).Inc() }

func (m *Metrics) RemoteFailed(reason string) { m.CopilotRemoteFailures.WithLabelValues(reason).Inc() }

// SetStoreRecords matches the store's OnLoad hook.
func (m *Metrics) SetStoreRecords(n int) { m.StoreRecords.Set(float64(n)) }
