package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	estimates *prometheus.CounterVec
}

// newMetrics uses a private registry so several servers can coexist in one
// process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yc_tf_cost",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "yc_tf_cost",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yc_tf_cost",
			Name:      "estimates_total",
			Help:      "Completed estimates by report kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.durations,
		m.estimates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) estimated(comparison bool) {
	kind := "summary"
	if comparison {
		kind = "comparison"
	}
	m.estimates.WithLabelValues(kind).Inc()
}
