package addresses

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// AddressGateway интерфейс эндпоинтов адресов бэкенда
type AddressGateway interface {
	ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error)
	CreateAddress(ctx context.Context, userID int64, address domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, addressID int64, address domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, addressID int64) error
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
