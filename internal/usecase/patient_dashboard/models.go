package patient_dashboard

import "github.com/m04kA/SMC-BookingClient/internal/domain"

const decodeErrorKind = "patient_confirmations"

// View снимок дашборда пациента
type View struct {
	Active          *domain.Booking
	History         []domain.Booking
	Doctors         []domain.Doctor
	Catalogue       domain.SpecializationCatalogue
	Addresses       []domain.Address
	LoadFailed      bool
	LastConfirmedID *int64 // последнее бронирование, пришедшее push-ем
}
