// Package metrics объявляет Prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик, регистрируемых в переданном Registerer.
type Metrics struct {
	OutboundCalls   *prometheus.CounterVec
	OutboundRetries *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики. reg == nil означает, что метрики не регистрируются.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OutboundCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xbot",
			Name:      "outbound_calls_total",
			Help:      "Calls to external vendor APIs by outcome.",
		}, []string{"vendor", "outcome"}),
		OutboundRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xbot",
			Name:      "outbound_retries_total",
			Help:      "Retries caused by vendor rate limiting.",
		}, []string{"vendor"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xbot",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "xbot",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(m.OutboundCalls, m.OutboundRetries, m.HTTPRequests, m.HTTPDuration)
	}
	return m
}
