package doctor_dashboard

import (
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

const (
	msgPaymentLinkFailed = "Failed to generate payment link"
	msgCompleteFailed    = "Failed to mark appointment as completed"

	// MsgPaymentLinkSent уведомление после успешной генерации ссылки
	MsgPaymentLinkSent = "Payment link generated and sent to patient!"
)

// View снимок дашборда врача за выбранный день
type View struct {
	Date         time.Time
	Period       domain.ChartPeriod
	Metrics      domain.DashboardMetrics
	Appointments []domain.Appointment
	Chart        domain.ChartData
	LoadFailed   bool
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
