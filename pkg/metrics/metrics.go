package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекторы Prometheus клиента бронирований
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы игнорируются
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec

	RealtimeMessagesTotal     *prometheus.CounterVec
	RealtimeReconnectsTotal   *prometheus.CounterVec
	RealtimeDecodeErrorsTotal *prometheus.CounterVec
	RealtimeSubscriptions     *prometheus.GaugeVec

	StoreBookings *prometheus.GaugeVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of local API requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Local API request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		GatewayRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of booking backend requests",
		}, []string{"service", "endpoint", "method", "status"}),
		GatewayRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Booking backend request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "endpoint"}),
		RealtimeMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_messages_total",
			Help: "Messages received from realtime topics",
		}, []string{"service", "topic_kind"}),
		RealtimeReconnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_reconnects_total",
			Help: "Realtime connection drops followed by a reconnect attempt",
		}, []string{"service", "topic_kind"}),
		RealtimeDecodeErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_decode_errors_total",
			Help: "Realtime payloads that failed to decode",
		}, []string{"service", "topic_kind"}),
		RealtimeSubscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "realtime_active_topics",
			Help: "Topics with a live connection loop",
		}, []string{"service"}),
		StoreBookings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "reconciliation_store_bookings",
			Help: "Bookings held by the reconciliation store",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GatewayRequestsTotal,
		m.GatewayRequestDuration,
		m.RealtimeMessagesTotal,
		m.RealtimeReconnectsTotal,
		m.RealtimeDecodeErrorsTotal,
		m.RealtimeSubscriptions,
		m.StoreBookings,
	)

	return m
}

// ObserveHTTPRequest фиксирует запрос к локальному API
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveGatewayRequest фиксирует запрос к бэкенду, status=0 для транспортных ошибок
func (m *Metrics) ObserveGatewayRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestsTotal.WithLabelValues(m.serviceName, endpoint, method, strconv.Itoa(status)).Inc()
	m.GatewayRequestDuration.WithLabelValues(m.serviceName, endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RealtimeMessage(topicKind string) {
	if m == nil {
		return
	}
	m.RealtimeMessagesTotal.WithLabelValues(m.serviceName, topicKind).Inc()
}

func (m *Metrics) RealtimeReconnect(topicKind string) {
	if m == nil {
		return
	}
	m.RealtimeReconnectsTotal.WithLabelValues(m.serviceName, topicKind).Inc()
}

func (m *Metrics) RealtimeDecodeError(topicKind string) {
	if m == nil {
		return
	}
	m.RealtimeDecodeErrorsTotal.WithLabelValues(m.serviceName, topicKind).Inc()
}

func (m *Metrics) SetActiveTopics(n int) {
	if m == nil {
		return
	}
	m.RealtimeSubscriptions.WithLabelValues(m.serviceName).Set(float64(n))
}

func (m *Metrics) SetStoreBookings(n int) {
	if m == nil {
		return
	}
	m.StoreBookings.WithLabelValues(m.serviceName).Set(float64(n))
}
