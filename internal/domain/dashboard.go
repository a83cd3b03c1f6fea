package domain

import "time"

// ChartPeriod selects dashboard chart aggregation
type ChartPeriod string

const (
	ChartDaily  ChartPeriod = "daily"
	ChartWeekly ChartPeriod = "weekly"
)

// DashboardMetrics doctor's daily counters
type DashboardMetrics struct {
	SlotsBooked            int
	CustomersAttendedToday int
}

// ChartPoint single chart bucket
type ChartPoint struct {
	Label  string
	Count  int
	Amount *float64
}

// ChartData chart series for a period
type ChartData struct {
	Period     ChartPeriod
	DataPoints []ChartPoint
}

// Appointment is a booking row on the doctor's day view
type Appointment struct {
	ID            int64
	PatientID     int64
	PatientName   string
	PatientPhone  string
	StartTime     string
	Status        BookingStatus
	TotalAmount   *float64
	PaymentStatus *string
	PaymentLink   *string
}

// ConfirmRequest doctor's confirmation of a pending request
type ConfirmRequest struct {
	DoctorID        int64
	DurationMinutes int
	Remarks         string
}

// RejectRequest doctor's rejection of a pending request
type RejectRequest struct {
	DoctorID int64
	Message  string
}

// BookingRequest payload produced by the booking wizard
type BookingRequest struct {
	DoctorPhone        string
	PatientPhone       string
	PatientName        string
	RequestedDate      time.Time
	RequestedStartTime string
	Description        string
	AddressID          int64
}
