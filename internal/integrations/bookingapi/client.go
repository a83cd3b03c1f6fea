package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-ID"

	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

// Client клиент REST API бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	log        Logger
}

// Option настройка клиента
type Option func(*Client)

// WithRateLimit ограничивает исходящие запросы; rps <= 0 отключает лимит
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		// при burst 0 лимитер не выдаёт ни одного токена
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics оборачивает транспорт метриками запросов
func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		c.httpClient.Transport = newInstrumentedTransport(c.httpClient.Transport, m)
	}
}

// NewClient создает новый экземпляр клиента API бронирований
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport,
		},
		tokens: tokens,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request описание одного вызова API
type request struct {
	endpoint    string // метка для логов и метрик, без идентификаторов
	method      string
	path        string
	query       url.Values
	body        interface{}
	rawBody     *string // тело text/plain
	out         interface{}
	allowNoBody bool
}

func (c *Client) do(ctx context.Context, r request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s: rate limiter: %v", ErrInternal, r.endpoint, err)
		}
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.rawBody != nil:
		body = strings.NewReader(*r.rawBody)
		contentType = contentTypeText
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%w: %s: failed to encode body: %v", ErrInternal, r.endpoint, err)
		}
		body = bytes.NewReader(payload)
		contentType = contentTypeJSON
	}

	ctx = withEndpoint(ctx, r.endpoint)
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to create request: %v", ErrInternal, r.endpoint, err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s - transport failure, request_id=%s: %v", r.method, r.endpoint, requestID, err)
		return fmt.Errorf("%w: %s: failed to execute request: %v", ErrInternal, r.endpoint, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Endpoint: r.endpoint, Status: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		var errBody ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Message = errBody.text()
		}
		c.log.Warn("%s %s - status %d, request_id=%s: %s", r.method, r.endpoint, resp.StatusCode, requestID, strings.TrimSpace(string(raw)))
		return apiErr
	}

	if r.out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to read response: %v", ErrInternal, r.endpoint, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if r.allowNoBody {
			return nil
		}
		return fmt.Errorf("%w: %s: empty response body", ErrInvalidResponse, r.endpoint)
	}

	// Парсим ответ
	if err := json.Unmarshal(raw, r.out); err != nil {
		c.log.Error("%s %s - failed to decode response, request_id=%s: %v", r.method, r.endpoint, requestID, err)
		return fmt.Errorf("%w: %s: failed to decode response: %v", ErrInvalidResponse, r.endpoint, err)
	}
	return nil
}
