package doctor_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	doctorDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/doctor_dashboard"
)

type DoctorDashboard interface {
	View() doctorDashboard.View
	SetDate(ctx context.Context, date time.Time) error
	SetChartPeriod(ctx context.Context, period domain.ChartPeriod) error
	CreatePaymentLink(ctx context.Context, bookingID int64, amount *float64) (*domain.Payment, error)
	CompleteBooking(ctx context.Context, bookingID int64, remarks string) error
	SearchPatient(ctx context.Context, phone string) ([]domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
