package bookingapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/pkg/types"
)

// ErrorResponse тело ошибки сервиса; встречаются оба поля
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e ErrorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Booking бронирование пациента либо запись дня врача
// Разные эндпоинты отдают ссылку на оплату то в paymentLink, то в paymentLinkUrl
type Booking struct {
	ID             int64            `json:"id"`
	DoctorID       int64            `json:"doctorId"`
	DoctorName     string           `json:"doctorName"`
	PatientID      int64            `json:"patientId"`
	PatientName    string           `json:"patientName"`
	PatientPhone   string           `json:"patientPhone"`
	BookingDate    string           `json:"bookingDate"`
	StartTime      types.TimeString `json:"startTime"`
	Status         string           `json:"status"`
	PaymentStatus  *string          `json:"paymentStatus,omitempty"`
	PaymentLink    *string          `json:"paymentLink,omitempty"`
	PaymentLinkURL *string          `json:"paymentLinkUrl,omitempty"`
	TotalAmount    *float64         `json:"totalAmount,omitempty"`
}

// ToDomain конвертирует DTO в доменную модель
func (b Booking) ToDomain() (domain.Booking, error) {
	status, err := domain.ParseBookingStatus(b.Status)
	if err != nil {
		return domain.Booking{}, err
	}

	var date time.Time
	if b.BookingDate != "" {
		date, err = time.Parse(domain.DateFormat, b.BookingDate)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("booking %d: bookingDate: %w", b.ID, err)
		}
	}

	link := b.PaymentLink
	if link == nil || *link == "" {
		link = b.PaymentLinkURL
	}

	return domain.Booking{
		ID:            b.ID,
		DoctorID:      b.DoctorID,
		DoctorName:    b.DoctorName,
		PatientID:     b.PatientID,
		PatientName:   b.PatientName,
		PatientPhone:  b.PatientPhone,
		BookingDate:   date,
		StartTime:     b.StartTime,
		Status:        status,
		PaymentStatus: b.PaymentStatus,
		PaymentLink:   link,
		TotalAmount:   b.TotalAmount,
	}, nil
}

// ToAppointment конвертирует DTO в строку дня врача
func (b Booking) ToAppointment() (domain.Appointment, error) {
	booking, err := b.ToDomain()
	if err != nil {
		return domain.Appointment{}, err
	}
	return domain.Appointment{
		ID:            booking.ID,
		PatientID:     booking.PatientID,
		PatientName:   booking.PatientName,
		PatientPhone:  booking.PatientPhone,
		StartTime:     booking.StartTime.String(),
		Status:        booking.Status,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
		PaymentLink:   booking.PaymentLink,
	}, nil
}

func bookingsToDomain(items []Booking) ([]domain.Booking, error) {
	result := make([]domain.Booking, 0, len(items))
	for _, item := range items {
		booking, err := item.ToDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, nil
}

// Doctor врач
type Doctor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
}

// ToDomain конвертирует DTO в доменную модель
func (d Doctor) ToDomain() domain.Doctor {
	return domain.Doctor{
		ID:             d.ID,
		Name:           d.Name,
		Phone:          d.Phone,
		Specialization: d.Specialization,
		Qualification:  d.Qualification,
	}
}

// Specialization элемент справочника специализаций
type Specialization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SpecializationsResponse ответ GET /patient/bookings/specializations
type SpecializationsResponse struct {
	Specializations []Specialization `json:"specializations"`
	Qualifications  []string         `json:"qualifications"`
}

// ToDomain конвертирует DTO в доменную модель
func (r SpecializationsResponse) ToDomain() domain.SpecializationCatalogue {
	catalogue := domain.SpecializationCatalogue{
		Specializations: make([]domain.Specialization, 0, len(r.Specializations)),
		Qualifications:  append([]string{}, r.Qualifications...),
	}
	for _, s := range r.Specializations {
		catalogue.Specializations = append(catalogue.Specializations, domain.Specialization{ID: s.ID, Name: s.Name})
	}
	return catalogue
}

// Slot временной слот
type Slot struct {
	ID          int64            `json:"id"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

// ToDomain конвертирует DTO в доменную модель
func (s Slot) ToDomain() domain.Slot {
	return domain.Slot{
		ID:          s.ID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		IsAvailable: s.IsAvailable,
	}
}

// BookingRequest тело POST /patient/bookings/request
type BookingRequest struct {
	DoctorPhone        string `json:"doctorPhone"`
	PatientPhone       string `json:"patientPhone"`
	PatientName        string `json:"patientName"`
	RequestedDate      string `json:"requestedDate"`
	RequestedStartTime string `json:"requestedStartTime"`
	Description        string `json:"description"`
	AddressID          int64  `json:"addressId"`
}

// FromBookingRequest конвертирует доменный запрос в DTO
func FromBookingRequest(r domain.BookingRequest) BookingRequest {
	return BookingRequest{
		DoctorPhone:        r.DoctorPhone,
		PatientPhone:       r.PatientPhone,
		PatientName:        r.PatientName,
		RequestedDate:      r.RequestedDate.Format(domain.DateFormat),
		RequestedStartTime: r.RequestedStartTime,
		Description:        r.Description,
		AddressID:          r.AddressID,
	}
}

// Address адрес пользователя
type Address struct {
	ID           int64   `json:"id,omitempty"`
	UserID       int64   `json:"userId,omitempty"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
	IsPrimary    bool    `json:"isPrimary"`
}

// ToDomain конвертирует DTO в доменную модель
func (a Address) ToDomain() domain.Address {
	return domain.Address{
		ID:           a.ID,
		UserID:       a.UserID,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsPrimary:    a.IsPrimary,
	}
}

// FromAddress конвертирует доменную модель в DTO
func FromAddress(a domain.Address) Address {
	return Address{
		ID:           a.ID,
		UserID:       a.UserID,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsPrimary:    a.IsPrimary,
	}
}

// DashboardMetrics счётчики дня врача
type DashboardMetrics struct {
	SlotsBooked            int `json:"slotsBooked"`
	CustomersAttendedToday int `json:"customersAttendedToday"`
}

// ChartPoint точка графика
type ChartPoint struct {
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Amount *float64 `json:"amount,omitempty"`
}

// ChartData ответ GET /doctor/dashboard/metrics/charts
type ChartData struct {
	Period     string       `json:"period"`
	DataPoints []ChartPoint `json:"dataPoints"`
}

// ToDomain конвертирует DTO в доменную модель
func (c ChartData) ToDomain() domain.ChartData {
	data := domain.ChartData{
		Period:     domain.ChartPeriod(strings.ToLower(c.Period)),
		DataPoints: make([]domain.ChartPoint, 0, len(c.DataPoints)),
	}
	for _, p := range c.DataPoints {
		data.DataPoints = append(data.DataPoints, domain.ChartPoint{Label: p.Label, Count: p.Count, Amount: p.Amount})
	}
	return data
}

// PendingRequest запрос пациента, ожидающий решения врача
type PendingRequest struct {
	ID                 int64   `json:"id"`
	PatientPhone       string  `json:"patientPhone"`
	PatientName        string  `json:"patientName"`
	RequestedDate      string  `json:"requestedDate"`
	RequestedStartTime string  `json:"requestedStartTime"`
	Description        *string `json:"description,omitempty"`
	AddressID          *int64  `json:"addressId,omitempty"`
}

// ToDomain конвертирует DTO в доменную модель
func (p PendingRequest) ToDomain() (domain.PendingRequest, error) {
	date, err := time.Parse(domain.DateFormat, p.RequestedDate)
	if err != nil {
		return domain.PendingRequest{}, fmt.Errorf("pending request %d: requestedDate: %w", p.ID, err)
	}
	return domain.PendingRequest{
		ID:                 p.ID,
		PatientPhone:       p.PatientPhone,
		PatientName:        p.PatientName,
		RequestedDate:      date,
		RequestedStartTime: p.RequestedStartTime,
		Description:        p.Description,
		AddressID:          p.AddressID,
	}, nil
}

// ConfirmRequest тело POST /doctor/dashboard/requests/{id}/confirm
type ConfirmRequest struct {
	DoctorID        int64  `json:"doctorId"`
	DurationMinutes int    `json:"durationMinutes"`
	Remarks         string `json:"remarks"`
}

// RejectRequest тело POST /doctor/dashboard/requests/{id}/reject
type RejectRequest struct {
	DoctorID int64  `json:"doctorId"`
	Message  string `json:"message"`
}

// PaymentLinkRequest тело POST /payments/links
type PaymentLinkRequest struct {
	BookingID   int64   `json:"bookingId"`
	PatientID   int64   `json:"patientId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// Payment запись об оплате
type Payment struct {
	ID          int64   `json:"id"`
	BookingID   int64   `json:"bookingId"`
	PatientID   int64   `json:"patientId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	PaymentLink *string `json:"paymentLink,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// Сервис отдаёт LocalDateTime без зоны, встречается и RFC3339
var createdAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

func parseCreatedAt(s string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ToDomain конвертирует DTO в доменную модель
func (p Payment) ToDomain() domain.Payment {
	return domain.Payment{
		ID:          p.ID,
		BookingID:   p.BookingID,
		PatientID:   p.PatientID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		PaymentLink: p.PaymentLink,
		CreatedAt:   parseCreatedAt(p.CreatedAt),
	}
}
