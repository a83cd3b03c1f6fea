package doctor_dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	doctorDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/doctor_dashboard"
	"github.com/m04kA/SMC-BookingClient/pkg/ptr"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod      = "период графика должен быть daily или weekly"
	msgInvalidInput       = "некорректные данные"
	msgBookingNotFound    = "бронирование не найдено в выбранном дне"
	msgNotMounted         = "дашборд врача не активен"
	msgPhoneRequired      = "укажите телефон пациента"
	msgActionFailed       = "Action failed, please try again"
)

type Handler struct {
	dashboard DoctorDashboard
	logger    Logger
}

func NewHandler(dashboard DoctorDashboard, logger Logger) *Handler {
	return &Handler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Get GET /api/v1/doctor/dashboard
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromView(h.dashboard.View()))
}

// Update PUT /api/v1/doctor/dashboard
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctor/dashboard - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			h.logger.Warn("PUT /doctor/dashboard - Invalid date=%q", *req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		if err := h.dashboard.SetDate(r.Context(), date); err != nil && !errors.Is(err, doctorDashboard.ErrLoadFailed) {
			h.respondError(w, "PUT /doctor/dashboard", err)
			return
		}
	}
	if req.Period != nil {
		if err := h.dashboard.SetChartPeriod(r.Context(), domain.ChartPeriod(*req.Period)); err != nil && !errors.Is(err, doctorDashboard.ErrLoadFailed) {
			h.respondError(w, "PUT /doctor/dashboard", err)
			return
		}
	}

	// частичная ошибка загрузки видна через loadFailed
	handlers.RespondJSON(w, http.StatusOK, FromView(h.dashboard.View()))
}

// PaymentLink POST /api/v1/doctor/bookings/{bookingId}/payment-link
func (h *Handler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /doctor/bookings/{id}/payment-link - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req PaymentLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctor/bookings/{id}/payment-link - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.dashboard.CreatePaymentLink(r.Context(), bookingID, req.Amount)
	if err != nil {
		h.respondError(w, "POST /doctor/bookings/{id}/payment-link", err)
		return
	}

	response := PaymentLinkResponse{Message: doctorDashboard.MsgPaymentLinkSent}
	if payment != nil {
		response.PaymentID = ptr.Ptr(payment.ID)
		response.PaymentLink = payment.PaymentLink
	}
	h.logger.Info("POST /doctor/bookings/{id}/payment-link - Link generated: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// Complete POST /api/v1/doctor/bookings/{bookingId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /doctor/bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CompleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctor/bookings/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.dashboard.CompleteBooking(r.Context(), bookingID, req.Remarks); err != nil {
		h.respondError(w, "POST /doctor/bookings/{id}/complete", err)
		return
	}

	h.logger.Info("POST /doctor/bookings/{id}/complete - Booking completed: booking_id=%d", bookingID)
	w.WriteHeader(http.StatusNoContent)
}

// SearchPatient GET /api/v1/doctor/patients/search?phone=
func (h *Handler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	history, err := h.dashboard.SearchPatient(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		if errors.Is(err, doctorDashboard.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgPhoneRequired)
			return
		}
		h.respondError(w, "GET /doctor/patients/search", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromAppointments(history))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, doctorDashboard.ErrNotMounted):
		handlers.RespondConflict(w, msgNotMounted)

	case errors.Is(err, doctorDashboard.ErrInvalidPeriod):
		handlers.RespondBadRequest(w, msgInvalidPeriod)

	case errors.Is(err, doctorDashboard.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, doctorDashboard.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: %v", route, err)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, doctorDashboard.ErrPaymentLinkFailed),
		errors.Is(err, doctorDashboard.ErrCompleteFailed):
		h.logger.Warn("%s - Action failed: %v", route, err)
		handlers.RespondActionError(w, http.StatusBadGateway, err, msgActionFailed)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
