package get_request_address

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

type PendingRequests interface {
	AddressFor(ctx context.Context, requestID, addressID int64) (*domain.Address, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
