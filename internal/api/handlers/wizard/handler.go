package wizard

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	bookingWizard "github.com/m04kA/SMC-BookingClient/internal/usecase/booking_wizard"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDoctorNotFound     = "врач не найден"
	msgWizardClosed       = "мастер бронирования закрыт"
	msgInvalidStep        = "действие недоступно на текущем шаге"
	msgStepIncomplete     = "текущий шаг не заполнен"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgInvalidInput       = "некорректные данные"
	msgSubmitInProgress   = "запрос уже отправляется"
	msgSubmitFailed       = "Failed to submit booking request"
	msgNotMounted         = "дашборд пациента не активен"
)

type Handler struct {
	wizard    Wizard
	dashboard PatientDashboard
	logger    Logger
}

func NewHandler(wizard Wizard, dashboard PatientDashboard, logger Logger) *Handler {
	return &Handler{
		wizard:    wizard,
		dashboard: dashboard,
		logger:    logger,
	}
}

// State GET /api/v1/wizard
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.respondState(w)
}

// Open POST /api/v1/wizard/open
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/open - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var err error
	if req.DoctorID != nil {
		doctor, ok := h.dashboard.Doctor(*req.DoctorID)
		if !ok {
			h.logger.Warn("POST /wizard/open - Doctor not found: doctor_id=%d", *req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)
			return
		}
		err = h.dashboard.StartBooking(doctor)
	} else {
		err = h.dashboard.NewBooking()
	}
	if err != nil {
		h.respondError(w, "POST /wizard/open", err)
		return
	}

	h.logger.Info("POST /wizard/open - Wizard opened")
	h.respondState(w)
}

// Doctor POST /api/v1/wizard/doctor
func (h *Handler) Doctor(w http.ResponseWriter, r *http.Request) {
	var req DoctorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/doctor - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	doctor, ok := h.dashboard.Doctor(req.DoctorID)
	if !ok {
		h.logger.Warn("POST /wizard/doctor - Doctor not found: doctor_id=%d", req.DoctorID)
		handlers.RespondNotFound(w, msgDoctorNotFound)
		return
	}
	h.apply(w, "POST /wizard/doctor", h.wizard.SelectDoctor(doctor))
}

// Date POST /api/v1/wizard/date
func (h *Handler) Date(w http.ResponseWriter, r *http.Request) {
	var req DateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /wizard/date - Invalid date=%q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	h.apply(w, "POST /wizard/date", h.wizard.SelectDate(r.Context(), date))
}

// Slot POST /api/v1/wizard/slot
func (h *Handler) Slot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	h.apply(w, "POST /wizard/slot", h.wizard.SelectSlot(req.StartTime))
}

// Details POST /api/v1/wizard/details
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	var req DetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	h.apply(w, "POST /wizard/details", h.wizard.SetDetails(req.PatientName, req.PatientPhone, req.Description))
}

// Address POST /api/v1/wizard/address
func (h *Handler) Address(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/address - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	h.apply(w, "POST /wizard/address", h.wizard.SelectAddress(req.AddressID))
}

// Next POST /api/v1/wizard/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.apply(w, "POST /wizard/next", h.wizard.Next())
}

// Back POST /api/v1/wizard/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.apply(w, "POST /wizard/back", h.wizard.Back())
}

// Cancel POST /api/v1/wizard/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.wizard.Cancel()
	h.respondState(w)
}

// Submit POST /api/v1/wizard/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.wizard.Submit(r.Context()); err != nil {
		h.respondError(w, "POST /wizard/submit", err)
		return
	}

	h.logger.Info("POST /wizard/submit - Booking request submitted")
	h.respondState(w)
}

func (h *Handler) apply(w http.ResponseWriter, route string, err error) {
	if err != nil {
		h.respondError(w, route, err)
		return
	}
	h.respondState(w)
}

func (h *Handler) respondState(w http.ResponseWriter) {
	handlers.RespondJSON(w, http.StatusOK, FromState(h.wizard.CurrentState()))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, patientDashboard.ErrNotMounted):
		h.logger.Warn("%s - Dashboard not mounted", route)
		handlers.RespondConflict(w, msgNotMounted)

	case errors.Is(err, bookingWizard.ErrWizardClosed):
		h.logger.Warn("%s - Wizard closed", route)
		handlers.RespondConflict(w, msgWizardClosed)

	case errors.Is(err, bookingWizard.ErrInvalidStep):
		h.logger.Warn("%s - Invalid step: %v", route, err)
		handlers.RespondConflict(w, msgInvalidStep)

	case errors.Is(err, bookingWizard.ErrStepIncomplete):
		h.logger.Warn("%s - Step incomplete: %v", route, err)
		handlers.RespondBadRequest(w, msgStepIncomplete)

	case errors.Is(err, bookingWizard.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available: %v", route, err)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, bookingWizard.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, bookingWizard.ErrSubmitInProgress):
		h.logger.Warn("%s - Submit in progress", route)
		handlers.RespondConflict(w, msgSubmitInProgress)

	case errors.Is(err, bookingWizard.ErrSubmitFailed):
		message := h.wizard.CurrentState().SubmitError
		if message == "" {
			message = msgSubmitFailed
		}
		h.logger.Warn("%s - Submit failed: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, message)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
