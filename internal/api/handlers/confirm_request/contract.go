package confirm_request

import "context"

type PendingRequests interface {
	Confirm(ctx context.Context, requestID int64, durationMinutes int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
