package session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIdentity    = "в личности нет идентификатора пользователя"
	msgStorageFailed      = "не удалось сохранить сессию"
)

type Handler struct {
	session SessionContext
	logger  Logger
}

func NewHandler(sessionCtx SessionContext, logger Logger) *Handler {
	return &Handler{
		session: sessionCtx,
		logger:  logger,
	}
}

// Get GET /api/v1/session
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.session.Current()
	handlers.RespondJSON(w, http.StatusOK, FromIdentity(identity, ok))
}

// Login POST /api/v1/session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity := req.ToDomain()
	if err := h.session.Login(r.Context(), identity); err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidIdentity):
			h.logger.Warn("POST /session - Invalid identity")
			handlers.RespondBadRequest(w, msgInvalidIdentity)
		case errors.Is(err, session.ErrStorage):
			h.logger.Error("POST /session - Storage error: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgStorageFailed)
		default:
			h.logger.Error("POST /session - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /session - Logged in: user_id=%d, role=%s", identity.User.EffectiveID(), identity.User.Role)
	current, ok := h.session.Current()
	handlers.RespondJSON(w, http.StatusOK, FromIdentity(current, ok))
}

// Logout DELETE /api/v1/session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		// личность в памяти уже сброшена, ошибка только у хранилища
		h.logger.Error("DELETE /session - Failed to clear stored identity: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgStorageFailed)
		return
	}

	h.logger.Info("DELETE /session - Logged out")
	w.WriteHeader(http.StatusNoContent)
}
