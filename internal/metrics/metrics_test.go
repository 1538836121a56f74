package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRejection(t *testing.T) {
	m := NewMetrics()

	m.RecordRejection("IP Whitelist")
	m.RecordRejection("IP Whitelist")
	m.RecordRejection("Rate Limiting")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.firewallRejections.WithLabelValues("IP Whitelist")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.firewallRejections.WithLabelValues("Rate Limiting")))
}

func TestMetrics_RecordTransportCall(t *testing.T) {
	m := NewMetrics()

	m.RecordTransportCall("rest", true, 15*time.Millisecond)
	m.RecordTransportCall("rest", false, 20*time.Millisecond)
	m.RecordTransportCall("amqp", true, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transportCalls.WithLabelValues("rest", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transportCalls.WithLabelValues("rest", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transportCalls.WithLabelValues("amqp", "true")))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRejection("HMAC Signature Verification")
		m.RecordTransportCall("soap", false, time.Second)
		m.RecordWebhook("github", http.StatusOK)
		m.RecordHTTPRequest(http.MethodPost, http.StatusOK, time.Second)
		m.RecordNoncesPruned(3)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordWebhook("github", http.StatusForbidden)
	m.RecordNoncesPruned(4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `webhook_requests_total{service="github",status="403"} 1`)
	assert.Contains(t, body, "nonces_pruned_total 4")
}
