package session

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

type SessionContext interface {
	Current() (session.Identity, bool)
	Login(ctx context.Context, identity session.Identity) error
	Logout(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
