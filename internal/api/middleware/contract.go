package middleware

import (
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// HTTPMetrics сбор метрик локального API
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// IdentityProvider текущая личность сессии
type IdentityProvider interface {
	Current() (session.Identity, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
