package addresses

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	addressService "github.com/m04kA/SMC-BookingClient/internal/service/addresses"
	"github.com/m04kA/SMC-BookingClient/internal/service/addresses/models"
)

const (
	msgInvalidAddressID   = "некорректный ID адреса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные адреса"
	msgNotFound           = "адрес не найден"
	msgNotAuthenticated   = "требуется вход в систему"
	msgBackendFailed      = "Address service is unavailable"
)

type Handler struct {
	service AddressService
	logger  Logger
}

func NewHandler(service AddressService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/addresses
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /addresses", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/addresses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /addresses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /addresses", err)
		return
	}

	h.logger.Info("POST /addresses - Address created: address_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/addresses/{addressId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	addressID, err := handlers.PathInt64(r, "addressId")
	if err != nil {
		h.logger.Warn("PUT /addresses/{id} - Invalid address ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	var req models.AddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /addresses/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), addressID, &req)
	if err != nil {
		h.respondError(w, "PUT /addresses/{id}", err)
		return
	}

	h.logger.Info("PUT /addresses/{id} - Address updated: address_id=%d", addressID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/addresses/{addressId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	addressID, err := handlers.PathInt64(r, "addressId")
	if err != nil {
		h.logger.Warn("DELETE /addresses/{id} - Invalid address ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	if err := h.service.Delete(r.Context(), addressID); err != nil {
		h.respondError(w, "DELETE /addresses/{id}", err)
		return
	}

	h.logger.Info("DELETE /addresses/{id} - Address deleted: address_id=%d", addressID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, addressService.ErrNotAuthenticated):
		handlers.RespondUnauthorized(w, msgNotAuthenticated)

	case errors.Is(err, addressService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondActionError(w, http.StatusBadRequest, err, msgInvalidInput)

	case errors.Is(err, addressService.ErrAddressNotFound):
		h.logger.Warn("%s - Address not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, addressService.ErrLoadFailed),
		errors.Is(err, addressService.ErrSaveFailed),
		errors.Is(err, addressService.ErrDeleteFailed):
		h.logger.Warn("%s - Backend failure: %v", route, err)
		handlers.RespondActionError(w, http.StatusBadGateway, err, msgBackendFailed)

	default:
		h.logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
