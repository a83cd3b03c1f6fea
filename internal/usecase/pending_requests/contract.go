package pending_requests

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// Gateway эндпоинты разбора запросов пациентов
type Gateway interface {
	GetPendingRequests(ctx context.Context, doctorID int64) ([]domain.PendingRequest, error)
	ConfirmRequest(ctx context.Context, requestID int64, req domain.ConfirmRequest) error
	RejectRequest(ctx context.Context, requestID int64, req domain.RejectRequest) error
	GetAddress(ctx context.Context, addressID int64) (*domain.Address, error)
}

// Channel подписка на realtime-топики
type Channel interface {
	Subscribe(topic string, handler realtime.Handler) (*realtime.Subscription, error)
}

// IdentityProvider текущая личность сессии
type IdentityProvider interface {
	Require() (session.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
