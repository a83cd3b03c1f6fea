package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/session"
)

type contextKey int

const identityKey contextKey = iota

const (
	msgNotAuthenticated = "требуется вход в систему"
	msgDoctorOnly       = "раздел доступен только врачу"
)

// Auth пропускает запрос только при наличии личности в сессии и кладёт её в контекст
func Auth(identity IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := identity.Current()
			if !ok {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, current)))
		})
	}
}

// GetIdentity личность, положенная Auth
func GetIdentity(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}

// DoctorOnly пропускает запрос только для личности врача; ставится после Auth
func DoctorOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}
			if !identity.User.IsDoctor() {
				handlers.RespondForbidden(w, msgDoctorOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
