package get_doctors

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

type PatientDashboard interface {
	FilterDoctors(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
	Specializations() domain.SpecializationCatalogue
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
