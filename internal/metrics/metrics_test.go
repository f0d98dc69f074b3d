package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.Resolved(OutcomeRedirect)
	m.Resolved(OutcomeRedirect)
	m.Resolved(OutcomeNotFound)
	m.Issued(IssueResultCreated)
	m.ClickFailed("store")
	m.CodeCollided()
	m.ObserveResponse(http.MethodGet, http.StatusFound, 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Resolutions.WithLabelValues(OutcomeRedirect)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Resolutions.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Issuances.WithLabelValues(IssueResultCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ClickFailures.WithLabelValues("store")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CodeRetries))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Responses.WithLabelValues(http.MethodGet, "3xx")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Resolved(OutcomeRedirect)
		m.Issued(IssueResultCreated)
		m.ClickFailed("store")
		m.CodeCollided()
		m.ObserveResponse(http.MethodGet, http.StatusOK, 0)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Resolved(OutcomeStoreError)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `shortlinks_resolutions_total{outcome="store_error"} 1`))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(204))
	assert.Equal(t, "3xx", StatusClass(302))
	assert.Equal(t, "5xx", StatusClass(504))
	assert.Equal(t, "unknown", StatusClass(0))
}
