// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and store collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	registrations    prometheus.Counter
	referralsApplied *prometheus.CounterVec
	ordersCreated    *prometheus.CounterVec
	catalogSkipped   prometheus.Counter
}

// New registers the collectors on reg. reg is also used to serve /metrics.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "store",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "registrations_total",
			Help:      "Users registered.",
		}),
		referralsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "referrals_total",
			Help:      "Referral codes supplied at registration, by outcome.",
		}, []string{"outcome"}),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "orders_total",
			Help:      "Orders committed, by whether billing was stored.",
		}, []string{"billing"}),
		catalogSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "catalog_rows_skipped_total",
			Help:      "Products left out of listings because their details were missing or unreadable.",
		}),
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.registrations,
		m.referralsApplied,
		m.ordersCreated,
		m.catalogSkipped,
	)
	return m
}

// Handler serves the registry m was built with.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) IncRegistration() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

// Referral outcomes.
const (
	ReferralApplied = "applied"
	ReferralUnknown = "unknown_code"
	ReferralFailed  = "failed"
)

func (m *Metrics) IncReferral(outcome string) {
	if m == nil {
		return
	}
	m.referralsApplied.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncOrder(billingStored bool) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(strconv.FormatBool(billingStored)).Inc()
}

func (m *Metrics) IncCatalogSkipped() {
	if m == nil {
		return
	}
	m.catalogSkipped.Inc()
}
