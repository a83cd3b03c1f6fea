package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/infra/storage/identity"
	"github.com/m04kA/SMC-BookingClient/internal/session"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
)

func newHandler(t *testing.T) (*Handler, *session.Context, *identity.FileStore) {
	t.Helper()
	store := identity.NewFileStore(filepath.Join(t.TempDir(), "identity.json"))
	sc := session.NewContext(store, logger.NewNop())
	return NewHandler(sc, logger.NewNop()), sc, store
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var body SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandler_GetAnonymous(t *testing.T) {
	h, _, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeSession(t, rec).Authenticated)
}

func TestHandler_LoginPersistsIdentity(t *testing.T) {
	h, sc, store := newHandler(t)

	body := `{"token":" jwt ","user":{"id":3,"role":"doctor","name":"Dr Rao","phone":"9000000001"}}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.True(t, resp.Authenticated)
	assert.Equal(t, int64(3), resp.UserID)
	assert.Equal(t, "DOCTOR", resp.Role)
	assert.Equal(t, "Dr Rao", resp.Name)

	current, ok := sc.Current()
	require.True(t, ok)
	assert.Equal(t, "jwt", current.Token)
	assert.True(t, current.User.IsDoctor())

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.User.EffectiveID())
}

func TestHandler_LoginWithoutUserID(t *testing.T) {
	h, sc, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{"token":"jwt","user":{"role":"PATIENT"}}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, ok := sc.Current()
	assert.False(t, ok)
}

func TestHandler_LoginMalformedBody(t *testing.T) {
	h, _, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{"token":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Logout(t *testing.T) {
	h, sc, store := newHandler(t)
	require.NoError(t, sc.Login(context.Background(), session.Identity{
		Token: "jwt",
		User:  session.User{UserID: 12, Role: session.RolePatient},
	}))

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := sc.Current()
	assert.False(t, ok)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoIdentity)
}
