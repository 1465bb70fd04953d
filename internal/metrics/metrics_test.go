package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncRegistration()
	m.IncReferral(ReferralApplied)
	m.IncReferral(ReferralApplied)
	m.IncReferral(ReferralUnknown)
	m.IncOrder(false)
	m.IncCatalogSkipped()
	m.ObserveRequest(http.MethodGet, "/v1/products", 200, 20*time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, mfs, "store_registrations_total", "", ""))
	assert.Equal(t, 2.0, counterValue(t, mfs, "store_referrals_total", "outcome", ReferralApplied))
	assert.Equal(t, 1.0, counterValue(t, mfs, "store_referrals_total", "outcome", ReferralUnknown))
	assert.Equal(t, 1.0, counterValue(t, mfs, "store_orders_total", "billing", "false"))
	assert.Equal(t, 1.0, counterValue(t, mfs, "store_catalog_rows_skipped_total", "", ""))
	assert.Equal(t, 1.0, counterValue(t, mfs, "store_http_requests_total", "route", "/v1/products"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncRegistration()
		m.IncReferral(ReferralFailed)
		m.IncOrder(true)
		m.IncCatalogSkipped()
		m.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)
	})
	assert.Nil(t, New(nil))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncRegistration()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store_registrations_total 1")
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if label == "" || hasLabel(metric, label, value) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	return 0
}

func hasLabel(metric *dto.Metric, label, value string) bool {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == label && lp.GetValue() == value {
			return true
		}
	}
	return false
}
