package bookingapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics метрики исходящих запросов
type Metrics interface {
	ObserveGatewayRequest(endpoint, method string, status int, duration time.Duration)
}

// TokenSource источник bearer-токена текущей личности
type TokenSource interface {
	Token() string
}
