package doctor_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// Gateway эндпоинты дашборда врача
type Gateway interface {
	GetDashboardMetrics(ctx context.Context, doctorID int64, date time.Time) (*domain.DashboardMetrics, error)
	GetDoctorBookings(ctx context.Context, doctorID int64, date time.Time) ([]domain.Appointment, error)
	GetChartData(ctx context.Context, doctorID int64, period domain.ChartPeriod, startDate time.Time) (*domain.ChartData, error)
	CreatePaymentLink(ctx context.Context, req domain.PaymentLinkRequest) (*domain.Payment, error)
	CompleteBooking(ctx context.Context, bookingID int64, remarks string) error
	SearchPatient(ctx context.Context, phone string) ([]domain.Appointment, error)
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
