package reject_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	pendingRequests "github.com/m04kA/SMC-BookingClient/internal/usecase/pending_requests"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMessageTooLong     = "сообщение длиннее 500 символов"
	msgNotMounted         = "список запросов не активен"
	msgRejectFailed       = "Failed to reject request"
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

// Handle POST /api/v1/pending-requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /pending-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pending-requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.requests.Reject(r.Context(), requestID, req.Message); err != nil {
		switch {
		case errors.Is(err, pendingRequests.ErrInvalidInput):
			h.logger.Warn("POST /pending-requests/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMessageTooLong)

		case errors.Is(err, pendingRequests.ErrRejectFailed):
			h.logger.Warn("POST /pending-requests/{id}/reject - Reject failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondActionError(w, http.StatusBadGateway, err, msgRejectFailed)

		case errors.Is(err, pendingRequests.ErrNotMounted):
			handlers.RespondConflict(w, msgNotMounted)

		default:
			h.logger.Error("POST /pending-requests/{id}/reject - Unexpected error: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pending-requests/{id}/reject - Request rejected: request_id=%d", requestID)
	w.WriteHeader(http.StatusNoContent)
}
