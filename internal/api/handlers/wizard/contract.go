package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	bookingWizard "github.com/m04kA/SMC-BookingClient/internal/usecase/booking_wizard"
)

type Wizard interface {
	CurrentState() bookingWizard.State
	SelectDoctor(doctor domain.Doctor) error
	SelectDate(ctx context.Context, date time.Time) error
	SelectSlot(startTime string) error
	SetDetails(patientName, patientPhone, description string) error
	SelectAddress(addressID int64) error
	Next() error
	Back() error
	Cancel()
	Submit(ctx context.Context) error
}

type PatientDashboard interface {
	StartBooking(doctor domain.Doctor) error
	NewBooking() error
	Doctor(id int64) (domain.Doctor, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
