package get_request_address

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/service/addresses/models"
	pendingRequests "github.com/m04kA/SMC-BookingClient/internal/usecase/pending_requests"
)

const (
	msgInvalidRequestID = "некорректный ID запроса"
	msgInvalidAddressID = "некорректный ID адреса"
	msgNotMounted       = "список запросов не активен"
	msgAddressFailed    = "Failed to fetch address details"
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

// Handle GET /api/v1/pending-requests/{requestId}/addresses/{addressId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}
	addressID, err := handlers.PathInt64(r, "addressId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	address, err := h.requests.AddressFor(r.Context(), requestID, addressID)
	if err != nil {
		switch {
		case errors.Is(err, pendingRequests.ErrAddressFailed):
			h.logger.Warn("GET /pending-requests/{id}/addresses/{id} - Lookup failed: request_id=%d, address_id=%d", requestID, addressID)
			handlers.RespondActionError(w, http.StatusBadGateway, err, msgAddressFailed)

		case errors.Is(err, pendingRequests.ErrNotMounted):
			handlers.RespondConflict(w, msgNotMounted)

		default:
			h.logger.Error("GET /pending-requests/{id}/addresses/{id} - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAddress(address))
}
