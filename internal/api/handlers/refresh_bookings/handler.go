package refresh_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	getBookings "github.com/m04kA/SMC-BookingClient/internal/api/handlers/get_bookings"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
)

const (
	msgNotMounted = "дашборд пациента не активен"
	msgLoadFailed = "Failed to load bookings"
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

// Handle POST /api/v1/bookings/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Refresh(r.Context()); err != nil {
		switch {
		case errors.Is(err, patientDashboard.ErrNotMounted):
			h.logger.Warn("POST /bookings/refresh - Dashboard not mounted")
			handlers.RespondConflict(w, msgNotMounted)

		case errors.Is(err, patientDashboard.ErrLoadFailed):
			h.logger.Warn("POST /bookings/refresh - Load failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgLoadFailed)

		default:
			h.logger.Error("POST /bookings/refresh - Failed to refresh bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := getBookings.FromView(h.dashboard.View())
	h.logger.Info("POST /bookings/refresh - Bookings refreshed: history=%d", len(response.History))
	handlers.RespondJSON(w, http.StatusOK, response)
}
