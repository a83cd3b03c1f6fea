package doctor_dashboard

import (
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	doctorDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/doctor_dashboard"
)

// UpdateRequest смена дня и периода графика
type UpdateRequest struct {
	Date   *string `json:"date,omitempty"`   // "2024-06-01"
	Period *string `json:"period,omitempty"` // daily | weekly
}

// PaymentLinkRequest сумма ссылки; без неё берётся сумма приёма или 500
type PaymentLinkRequest struct {
	Amount *float64 `json:"amount,omitempty"`
}

// CompleteRequest замечания врача
type CompleteRequest struct {
	Remarks string `json:"remarks"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	PatientID     int64    `json:"patientId"`
	PatientName   string   `json:"patientName"`
	PatientPhone  string   `json:"patientPhone"`
	StartTime     string   `json:"startTime"`
	Status        string   `json:"status"`
	TotalAmount   *float64 `json:"totalAmount,omitempty"`
	PaymentStatus *string  `json:"paymentStatus,omitempty"`
	PaymentLink   *string  `json:"paymentLink,omitempty"`
}

// ChartPointResponse HTTP response model
type ChartPointResponse struct {
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Amount *float64 `json:"amount,omitempty"`
}

// DashboardResponse снимок дашборда врача
type DashboardResponse struct {
	Date                   string                `json:"date"`
	Period                 string                `json:"period"`
	SlotsBooked            int                   `json:"slotsBooked"`
	CustomersAttendedToday int                   `json:"customersAttendedToday"`
	Appointments           []AppointmentResponse `json:"appointments"`
	Chart                  []ChartPointResponse  `json:"chart"`
	LoadFailed             bool                  `json:"loadFailed"`
}

// PaymentLinkResponse результат генерации ссылки
type PaymentLinkResponse struct {
	Message     string  `json:"message"`
	PaymentID   *int64  `json:"paymentId,omitempty"`
	PaymentLink *string `json:"paymentLink,omitempty"`
}

// FromAppointments конвертирует приёмы в HTTP response
func FromAppointments(appointments []domain.Appointment) []AppointmentResponse {
	items := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, AppointmentResponse{
			ID:            a.ID,
			PatientID:     a.PatientID,
			PatientName:   a.PatientName,
			PatientPhone:  a.PatientPhone,
			StartTime:     a.StartTime,
			Status:        string(a.Status),
			TotalAmount:   a.TotalAmount,
			PaymentStatus: a.PaymentStatus,
			PaymentLink:   a.PaymentLink,
		})
	}
	return items
}

// FromView конвертирует снимок дашборда в HTTP response
func FromView(view doctorDashboard.View) *DashboardResponse {
	resp := &DashboardResponse{
		Period:                 string(view.Period),
		SlotsBooked:            view.Metrics.SlotsBooked,
		CustomersAttendedToday: view.Metrics.CustomersAttendedToday,
		Appointments:           FromAppointments(view.Appointments),
		Chart:                  make([]ChartPointResponse, 0, len(view.Chart.DataPoints)),
		LoadFailed:             view.LoadFailed,
	}
	if !view.Date.IsZero() {
		resp.Date = view.Date.Format(domain.DateFormat)
	}
	for _, p := range view.Chart.DataPoints {
		resp.Chart = append(resp.Chart, ChartPointResponse{Label: p.Label, Count: p.Count, Amount: p.Amount})
	}
	return resp
}
