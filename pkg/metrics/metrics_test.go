package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("booking-client", prometheus.NewRegistry())

	m.ObserveGatewayRequest("list_bookings", "GET", 200, 15*time.Millisecond)
	m.ObserveGatewayRequest("list_bookings", "GET", 200, 20*time.Millisecond)
	m.RealtimeMessage("patient_confirmations")
	m.RealtimeReconnect("patient_confirmations")
	m.RealtimeDecodeError("patient_confirmations")
	m.SetStoreBookings(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("booking-client", "list_bookings", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeMessagesTotal.WithLabelValues("booking-client", "patient_confirmations")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeReconnectsTotal.WithLabelValues("booking-client", "patient_confirmations")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RealtimeDecodeErrorsTotal.WithLabelValues("booking-client", "patient_confirmations")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.StoreBookings.WithLabelValues("booking-client")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/api/v1/bookings", 200, time.Millisecond)
		m.ObserveGatewayRequest("list_bookings", "GET", 0, time.Millisecond)
		m.RealtimeMessage("doctor_pending_requests")
		m.SetActiveTopics(1)
		m.SetStoreBookings(1)
	})
}
