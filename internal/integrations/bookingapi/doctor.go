package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// GetDashboardMetrics получает счётчики врача за дату
func (c *Client) GetDashboardMetrics(ctx context.Context, doctorID int64, date time.Time) (*domain.DashboardMetrics, error) {
	var resp DashboardMetrics
	err := c.do(ctx, request{
		endpoint: "doctor.metrics",
		method:   http.MethodGet,
		path:     "/doctor/dashboard/metrics",
		query:    doctorDateQuery(doctorID, date),
		out:      &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.DashboardMetrics{
		SlotsBooked:            resp.SlotsBooked,
		CustomersAttendedToday: resp.CustomersAttendedToday,
	}, nil
}

// GetDoctorBookings получает записи врача на дату
func (c *Client) GetDoctorBookings(ctx context.Context, doctorID int64, date time.Time) ([]domain.Appointment, error) {
	var items []Booking
	err := c.do(ctx, request{
		endpoint: "doctor.bookings",
		method:   http.MethodGet,
		path:     "/doctor/dashboard/bookings",
		query:    doctorDateQuery(doctorID, date),
		out:      &items,
	})
	if err != nil {
		return nil, err
	}
	return appointmentsToDomain("doctor.bookings", items)
}

// GetChartData получает данные графика за период
func (c *Client) GetChartData(ctx context.Context, doctorID int64, period domain.ChartPeriod, startDate time.Time) (*domain.ChartData, error) {
	query := url.Values{}
	query.Set("doctorId", strconv.FormatInt(doctorID, 10))
	query.Set("period", string(period))
	if !startDate.IsZero() {
		query.Set("startDate", startDate.Format(domain.DateFormat))
	}

	var resp ChartData
	err := c.do(ctx, request{
		endpoint: "doctor.charts",
		method:   http.MethodGet,
		path:     "/doctor/dashboard/metrics/charts",
		query:    query,
		out:      &resp,
	})
	if err != nil {
		return nil, err
	}

	data := resp.ToDomain()
	return &data, nil
}

// GetPendingRequests получает ожидающие запросы врача
func (c *Client) GetPendingRequests(ctx context.Context, doctorID int64) ([]domain.PendingRequest, error) {
	query := url.Values{}
	query.Set("doctorId", strconv.FormatInt(doctorID, 10))

	var items []PendingRequest
	err := c.do(ctx, request{
		endpoint: "doctor.pending",
		method:   http.MethodGet,
		path:     "/doctor/dashboard/pending-requests",
		query:    query,
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	requests := make([]domain.PendingRequest, 0, len(items))
	for _, item := range items {
		pending, err := item.ToDomain()
		if err != nil {
			return nil, wrapDecode("doctor.pending", err)
		}
		requests = append(requests, pending)
	}
	return requests, nil
}

// ConfirmRequest подтверждает запрос; 409 означает пересечение слотов
func (c *Client) ConfirmRequest(ctx context.Context, requestID int64, req domain.ConfirmRequest) error {
	return c.do(ctx, request{
		endpoint: "doctor.confirm",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/doctor/dashboard/requests/%d/confirm", requestID),
		body: ConfirmRequest{
			DoctorID:        req.DoctorID,
			DurationMinutes: req.DurationMinutes,
			Remarks:         req.Remarks,
		},
	})
}

// RejectRequest отклоняет запрос
func (c *Client) RejectRequest(ctx context.Context, requestID int64, req domain.RejectRequest) error {
	return c.do(ctx, request{
		endpoint: "doctor.reject",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/doctor/dashboard/requests/%d/reject", requestID),
		body: RejectRequest{
			DoctorID: req.DoctorID,
			Message:  req.Message,
		},
	})
}

// CompleteBooking отмечает приём завершённым; заметки уходят plain-text телом
func (c *Client) CompleteBooking(ctx context.Context, bookingID int64, remarks string) error {
	return c.do(ctx, request{
		endpoint: "doctor.complete",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/doctor/dashboard/bookings/%d/complete", bookingID),
		rawBody:  &remarks,
	})
}

// SearchPatient получает историю пациента по телефону
func (c *Client) SearchPatient(ctx context.Context, phone string) ([]domain.Appointment, error) {
	query := url.Values{}
	query.Set("phone", phone)

	var items []Booking
	err := c.do(ctx, request{
		endpoint: "doctor.patient_search",
		method:   http.MethodGet,
		path:     "/doctor/dashboard/patients/search",
		query:    query,
		out:      &items,
	})
	if err != nil {
		return nil, err
	}
	return appointmentsToDomain("doctor.patient_search", items)
}

func doctorDateQuery(doctorID int64, date time.Time) url.Values {
	query := url.Values{}
	query.Set("doctorId", strconv.FormatInt(doctorID, 10))
	query.Set("date", date.Format(domain.DateFormat))
	return query
}

func appointmentsToDomain(endpoint string, items []Booking) ([]domain.Appointment, error) {
	result := make([]domain.Appointment, 0, len(items))
	for _, item := range items {
		appointment, err := item.ToAppointment()
		if err != nil {
			return nil, wrapDecode(endpoint, err)
		}
		result = append(result, appointment)
	}
	return result, nil
}

func wrapDecode(endpoint string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, endpoint, err)
}
