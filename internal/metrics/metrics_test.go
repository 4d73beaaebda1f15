package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/collections/{name}", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/collections/{name}", http.StatusNotFound, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/collections/{name}", http.StatusNoContent, time.Millisecond)
	m.RecordMutation("employees", "create")
	m.RecordValidationFailure("employees")
	m.RecordValidationFailure("employees")
	m.RecordLogin(false)

	assert.Equal(t, 2.0, counterValue(t, m, "erp_http_requests_total", map[string]string{"result": "2xx"}))
	assert.Equal(t, 1.0, counterValue(t, m, "erp_http_requests_total", map[string]string{"result": "4xx"}))
	assert.Equal(t, 1.0, counterValue(t, m, "erp_record_mutations_total", map[string]string{"collection": "employees", "operation": "create"}))
	assert.Equal(t, 2.0, counterValue(t, m, "erp_record_validation_failures_total", map[string]string{"collection": "employees"}))
	assert.Equal(t, 1.0, counterValue(t, m, "erp_logins_total", map[string]string{"result": "failure"}))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordSeed("payroll")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `erp_collection_seed_writes_total{collection="payroll"} 1`))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/", 200, 0)
		m.RecordMutation("x", "delete")
		m.RecordValidationFailure("x")
		m.RecordLogin(true)
		m.RecordSeed("x")
	})
	assert.Nil(t, m.Registry())

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "unknown", statusClass(0))
}
