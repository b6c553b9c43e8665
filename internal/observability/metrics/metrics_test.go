package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveReply("remote", 0.2)
	m.ObserveReply("fallback", 0.5)
	m.ObserveReply("fallback", 0.5)
	m.ObserveRejected("empty")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.repliesTotal.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.repliesTotal.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejectedTotal.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsActive))
}

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveOpened()
	m.ObserveAction("next", "ok")
	m.ObserveAction("next", "date_required")
	m.ObserveConfirmed("Cardiology")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.draftsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actionsTotal.WithLabelValues("next", "date_required")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmations.WithLabelValues("Cardiology")))
}

func TestHTTPMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.ObserveRequest("GET", "/api/doctors/", "200", 0.01)

	count, err := testutil.GatherAndCount(reg, "healthsense_http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsNilSafe(t *testing.T) {
	var c *ChatMetrics
	c.ObserveReply("remote", 0.1)
	c.ObserveRejected("awaiting")
	c.SessionOpened()
	c.SessionClosed()

	var b *BookingMetrics
	b.ObserveOpened()
	b.ObserveAction("back", "ok")
	b.ObserveConfirmed("Neurology")

	var h *HTTPMetrics
	h.ObserveRequest("GET", "/", "200", 0.1)
}
