package get_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
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

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := FromView(h.dashboard.View())

	h.logger.Info("GET /bookings - Returned bookings: active=%t, history=%d", response.Active != nil, len(response.History))
	handlers.RespondJSON(w, http.StatusOK, response)
}
