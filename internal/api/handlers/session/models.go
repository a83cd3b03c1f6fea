package session

import (
	"strings"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

// LoginRequest личность, полученная после входа на бэкенде
type LoginRequest struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// ToDomain конвертирует запрос в личность
func (r *LoginRequest) ToDomain() session.Identity {
	user := r.User
	user.Role = session.Role(strings.ToUpper(strings.TrimSpace(string(user.Role))))
	return session.Identity{
		Token: strings.TrimSpace(r.Token),
		User:  user,
	}
}

// SessionResponse HTTP response model; токен наружу не отдаём
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"userId,omitempty"`
	Role          string `json:"role,omitempty"`
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// FromIdentity конвертирует личность в HTTP response
func FromIdentity(identity session.Identity, ok bool) SessionResponse {
	if !ok {
		return SessionResponse{}
	}
	return SessionResponse{
		Authenticated: true,
		UserID:        identity.User.EffectiveID(),
		Role:          string(identity.User.Role),
		Name:          identity.User.DisplayName(),
		Phone:         identity.User.Phone,
	}
}
