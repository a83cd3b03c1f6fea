package session

import "context"

// Store долговременное хранилище личности клиента
type Store interface {
	Load(ctx context.Context) (*Identity, error)
	Save(ctx context.Context, identity *Identity) error
	Clear(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
