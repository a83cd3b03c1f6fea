package refresh_bookings

import (
	"context"

	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
)

type PatientDashboard interface {
	Refresh(ctx context.Context) error
	View() patientDashboard.View
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
