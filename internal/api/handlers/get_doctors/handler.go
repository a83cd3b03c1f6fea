package get_doctors

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
)

const (
	msgInvalidSpecialization = "некорректный ID специализации"
	msgNotMounted            = "дашборд пациента не активен"
	msgLoadFailed            = "Failed to load doctors"
)

type Handler struct {
	dashboard PatientDashboard
	logger    Logger
}

func NewHandler(dashboard PatientDashboard, logger Logger) *Handler {
	return &Handler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle GET /api/v1/doctors?specializationId=&qualification=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var filter domain.DoctorFilter

	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("specializationId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /doctors - Invalid specializationId=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidSpecialization)
			return
		}
		filter.SpecializationID = &id
	}
	if q := strings.TrimSpace(query.Get("qualification")); q != "" {
		filter.Qualification = &q
	}

	doctors, err := h.dashboard.FilterDoctors(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, patientDashboard.ErrNotMounted):
			handlers.RespondConflict(w, msgNotMounted)
		case errors.Is(err, patientDashboard.ErrLoadFailed):
			h.logger.Warn("GET /doctors - Load failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgLoadFailed)
		default:
			h.logger.Error("GET /doctors - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainDoctors(doctors))
}

// Specializations GET /api/v1/specializations
func (h *Handler) Specializations(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromCatalogue(h.dashboard.Specializations()))
}
