package booking_wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// SlotsProvider источник доступных слотов врача на дату
type SlotsProvider interface {
	GetAvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]domain.Slot, error)
}

// BookingSubmitter отправка запроса на бронирование
type BookingSubmitter interface {
	SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) error
}

// Refresher полная перезагрузка списка бронирований после успешной отправки
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
