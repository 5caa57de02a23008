package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Gateway behaviour
	DegradedResponses *prometheus.CounterVec
	StatsFieldTiers   *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec
}

// New registers all collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainpulse_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainpulse_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route"},
		),
		DegradedResponses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainpulse_degraded_responses_total",
				Help: "List responses served empty because the storage query failed",
			},
			[]string{"resource"},
		),
		StatsFieldTiers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainpulse_stats_field_tier_total",
				Help: "Source used for each stats field",
			},
			[]string{"field", "tier"}, // tier: primary|fallback|default
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainpulse_cache_lookups_total",
				Help: "Response cache lookups",
			},
			[]string{"result"}, // result: hit|miss|error
		),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.DegradedResponses,
		m.StatsFieldTiers,
		m.CacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
