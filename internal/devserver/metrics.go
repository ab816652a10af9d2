package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects request and business counters for /metrics.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	orders        prometheus.Counter
	loginFailures prometheus.Counter
	rateLimited   prometheus.Counter
	gatherer      prometheus.Gatherer
}

// NewMetrics registers the collectors on reg, which also serves them.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "giftshop_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "giftshop_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftshop_orders_total",
			Help: "Orders accepted.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftshop_login_failures_total",
			Help: "Login attempts rejected for bad credentials.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "giftshop_rate_limited_total",
			Help: "Requests rejected by the login rate limiter.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(m.requests, m.latency, m.orders, m.loginFailures, m.rateLimited)
	return m
}

func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) RecordOrder()        { m.orders.Inc() }
func (m *Metrics) RecordLoginFailure() { m.loginFailures.Inc() }
func (m *Metrics) RecordRateLimited()  { m.rateLimited.Inc() }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
