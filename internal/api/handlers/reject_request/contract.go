package reject_request

import "context"

type PendingRequests interface {
	Reject(ctx context.Context, requestID int64, message string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
