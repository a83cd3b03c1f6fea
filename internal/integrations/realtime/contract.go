package realtime

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics метрики канала
type Metrics interface {
	RealtimeMessage(topicKind string)
	RealtimeReconnect(topicKind string)
	SetActiveTopics(n int)
}

// TokenSource источник bearer-токена для CONNECT
type TokenSource interface {
	Token() string
}

// Dialer устанавливает websocket-соединение; *websocket.Dialer подходит
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}
