package get_bookings

import (
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64    `json:"id"`
	DoctorID      int64    `json:"doctorId"`
	DoctorName    string   `json:"doctorName,omitempty"`
	PatientName   string   `json:"patientName,omitempty"`
	PatientPhone  string   `json:"patientPhone,omitempty"`
	BookingDate   string   `json:"bookingDate"`
	StartTime     string   `json:"startTime"`
	Status        string   `json:"status"`
	PaymentStatus *string  `json:"paymentStatus,omitempty"`
	PaymentLink   *string  `json:"paymentLink,omitempty"`
	TotalAmount   *float64 `json:"totalAmount,omitempty"`
	NeedsPayment  bool     `json:"needsPayment"`
}

// BookingsResponse активное бронирование и история
type BookingsResponse struct {
	Active          *BookingResponse  `json:"active"`
	History         []BookingResponse `json:"history"`
	LoadFailed      bool              `json:"loadFailed"`
	LastConfirmedID *int64            `json:"lastConfirmedId,omitempty"`
}

// FromDomainBooking конвертирует доменную модель в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		DoctorID:      b.DoctorID,
		DoctorName:    b.DoctorName,
		PatientName:   b.PatientName,
		PatientPhone:  b.PatientPhone,
		StartTime:     b.StartTime.String(),
		Status:        string(b.Status),
		PaymentStatus: b.PaymentStatus,
		PaymentLink:   b.PaymentLink,
		TotalAmount:   b.TotalAmount,
		NeedsPayment:  b.NeedsPayment(),
	}
	if !b.BookingDate.IsZero() {
		resp.BookingDate = b.BookingDate.Format(domain.DateFormat)
	}
	return resp
}

// FromView конвертирует снимок дашборда пациента
func FromView(view patientDashboard.View) *BookingsResponse {
	resp := &BookingsResponse{
		History:         make([]BookingResponse, 0, len(view.History)),
		LoadFailed:      view.LoadFailed,
		LastConfirmedID: view.LastConfirmedID,
	}
	if view.Active != nil {
		resp.Active = FromDomainBooking(view.Active)
	}
	for i := range view.History {
		resp.History = append(resp.History, *FromDomainBooking(&view.History[i]))
	}
	return resp
}
