package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

func TestRespondActionError(t *testing.T) {
	kind := errors.New("confirm failed")

	rec := httptest.NewRecorder()
	RespondActionError(rec, http.StatusBadGateway, &domain.ActionError{Kind: kind, Message: "Failed to confirm request"}, "fallback")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Failed to confirm request", body.Error)

	rec = httptest.NewRecorder()
	RespondActionError(rec, http.StatusBadGateway, kind, "fallback")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "fallback", body.Error)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Asha"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "Asha", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"requestId": "5"})
	id, err := PathInt64(r, "requestId")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"requestId": "-1"})
	_, err = PathInt64(r, "requestId")
	assert.Error(t, err)

	_, err = PathInt64(r, "bookingId")
	assert.Error(t, err)
}
