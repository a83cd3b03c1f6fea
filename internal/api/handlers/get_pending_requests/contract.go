package get_pending_requests

import (
	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

type PendingRequests interface {
	Requests() []domain.PendingRequest
	LoadFailed() bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
