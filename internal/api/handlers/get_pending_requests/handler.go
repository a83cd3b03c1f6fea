package get_pending_requests

import (
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
)

type Handler struct {
	requests PendingRequests
	logger   Logger
}

func NewHandler(requests PendingRequests, logger Logger) *Handler {
	return &Handler{
		requests: requests,
		logger:   logger,
	}
}

// Handle GET /api/v1/pending-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := FromDomainRequests(h.requests.Requests(), h.requests.LoadFailed())

	h.logger.Info("GET /pending-requests - Returned %d requests", response.Total)
	handlers.RespondJSON(w, http.StatusOK, response)
}
