package patient_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
	"github.com/m04kA/SMC-BookingClient/internal/service/reconciliation"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// Gateway вызовы REST API, нужные дашборду пациента и мастеру
type Gateway interface {
	ListDoctors(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
	GetSpecializations(ctx context.Context) (*domain.SpecializationCatalogue, error)
	ListPatientBookings(ctx context.Context, patientID int64) ([]domain.Booking, error)
	ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error)
	GetBookingPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	GetAvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]domain.Slot, error)
	SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) error
}

// Channel realtime-подписки
type Channel interface {
	Subscribe(topic string, handler realtime.Handler) (*realtime.Subscription, error)
}

// BookingStore хранилище согласования бронирований
type BookingStore interface {
	BeginRefresh() reconciliation.RefreshToken
	CommitRefresh(token reconciliation.RefreshToken, bookings []domain.Booking)
	AbortRefresh(token reconciliation.RefreshToken)
	Upsert(booking domain.Booking)
	ActiveBooking() (domain.Booking, bool)
	HistoryBookings() []domain.Booking
}

// IdentityProvider текущая личность
type IdentityProvider interface {
	Require() (session.Identity, error)
}

// Metrics метрики обработки push-сообщений
type Metrics interface {
	RealtimeDecodeError(topicKind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
