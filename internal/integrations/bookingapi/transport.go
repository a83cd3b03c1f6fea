package bookingapi

import (
	"context"
	"net/http"
	"time"
)

type endpointKey struct{}

func withEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

func endpointFrom(ctx context.Context) string {
	if endpoint, ok := ctx.Value(endpointKey{}).(string); ok {
		return endpoint
	}
	return "unknown"
}

// instrumentedTransport пишет длительность и статус каждого запроса
// Статус 0 означает ошибку транспорта
type instrumentedTransport struct {
	next    http.RoundTripper
	metrics Metrics
}

func newInstrumentedTransport(next http.RoundTripper, m Metrics) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &instrumentedTransport{next: next, metrics: m}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	t.metrics.ObserveGatewayRequest(endpointFrom(req.Context()), req.Method, status, time.Since(start))
	return resp, err
}
