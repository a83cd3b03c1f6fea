package bookingapi

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// ListDoctors получает список врачей с фильтрами
func (c *Client) ListDoctors(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	query := url.Values{}
	if filter.SpecializationID != nil {
		query.Set("specializationId", strconv.FormatInt(*filter.SpecializationID, 10))
	}
	if filter.Qualification != nil && *filter.Qualification != "" {
		query.Set("qualification", *filter.Qualification)
	}

	var items []Doctor
	err := c.do(ctx, request{
		endpoint: "patient.doctors",
		method:   http.MethodGet,
		path:     "/patient/bookings/doctors",
		query:    query,
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	doctors := make([]domain.Doctor, 0, len(items))
	for _, item := range items {
		doctors = append(doctors, item.ToDomain())
	}
	return doctors, nil
}

// GetSpecializations получает справочник специализаций и квалификаций
func (c *Client) GetSpecializations(ctx context.Context) (*domain.SpecializationCatalogue, error) {
	var resp SpecializationsResponse
	err := c.do(ctx, request{
		endpoint: "patient.specializations",
		method:   http.MethodGet,
		path:     "/patient/bookings/specializations",
		out:      &resp,
	})
	if err != nil {
		return nil, err
	}

	catalogue := resp.ToDomain()
	return &catalogue, nil
}

// GetAvailableSlots получает слоты врача на дату
func (c *Client) GetAvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("doctorId", strconv.FormatInt(doctorID, 10))
	query.Set("date", date.Format(domain.DateFormat))

	var items []Slot
	err := c.do(ctx, request{
		endpoint: "patient.slots",
		method:   http.MethodGet,
		path:     "/patient/bookings/slots/available",
		query:    query,
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0, len(items))
	for _, item := range items {
		if err := item.StartTime.Validate(); err != nil {
			c.log.Warn("GetAvailableSlots: doctor=%d skipping slot=%d without start time: %v", doctorID, item.ID, err)
			continue
		}
		slots = append(slots, item.ToDomain())
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
	return slots, nil
}

// SubmitBookingRequest отправляет запрос на бронирование
func (c *Client) SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) error {
	return c.do(ctx, request{
		endpoint: "patient.request",
		method:   http.MethodPost,
		path:     "/patient/bookings/request",
		body:     FromBookingRequest(req),
	})
}

// ListPatientBookings получает бронирования пациента
func (c *Client) ListPatientBookings(ctx context.Context, patientID int64) ([]domain.Booking, error) {
	query := url.Values{}
	query.Set("patientId", strconv.FormatInt(patientID, 10))

	var items []Booking
	err := c.do(ctx, request{
		endpoint: "patient.bookings",
		method:   http.MethodGet,
		path:     "/patient/bookings/list",
		query:    query,
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	bookings, err := bookingsToDomain(items)
	if err != nil {
		return nil, wrapDecode("patient.bookings", err)
	}
	return bookings, nil
}
