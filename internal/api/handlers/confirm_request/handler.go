package confirm_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	pendingRequests "github.com/m04kA/SMC-BookingClient/internal/usecase/pending_requests"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные"
	msgNotMounted         = "список запросов не активен"
	msgConfirmFailed      = "Failed to confirm request"
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

// Handle POST /api/v1/pending-requests/{requestId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /pending-requests/{id}/confirm - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pending-requests/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.requests.Confirm(r.Context(), requestID, req.DurationMinutes); err != nil {
		switch {
		case errors.Is(err, pendingRequests.ErrTimeSlotConflict):
			h.logger.Warn("POST /pending-requests/{id}/confirm - Time slot conflict: request_id=%d", requestID)
			handlers.RespondActionError(w, http.StatusConflict, err, msgConfirmFailed)

		case errors.Is(err, pendingRequests.ErrConfirmFailed):
			h.logger.Warn("POST /pending-requests/{id}/confirm - Confirm failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondActionError(w, http.StatusBadGateway, err, msgConfirmFailed)

		case errors.Is(err, pendingRequests.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, pendingRequests.ErrNotMounted):
			handlers.RespondConflict(w, msgNotMounted)

		default:
			h.logger.Error("POST /pending-requests/{id}/confirm - Unexpected error: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pending-requests/{id}/confirm - Request confirmed: request_id=%d", requestID)
	w.WriteHeader(http.StatusNoContent)
}
