package addresses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	addressService "github.com/m04kA/SMC-BookingClient/internal/service/addresses"
	"github.com/m04kA/SMC-BookingClient/internal/service/addresses/models"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
)

type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) List(ctx context.Context) (*models.AddressListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressListResponse), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, req *models.AddressRequest) (*models.AddressResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressResponse), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, addressID int64, req *models.AddressRequest) (*models.AddressResponse, error) {
	args := m.Called(ctx, addressID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressResponse), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, addressID int64) error {
	return m.Called(ctx, addressID).Error(0)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestHandler_CreateReturnsCreated(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.AddressRequest) bool {
		return req.AddressLine1 == "12 MG Road" && req.City == "Pune"
	})).Return(&models.AddressResponse{ID: 41, AddressLine1: "12 MG Road", IsPrimary: true}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/addresses",
		strings.NewReader(`{"addressLine1":"12 MG Road","city":"Pune","state":"MH","postalCode":"411001"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.AddressResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(41), body.ID)
	assert.True(t, body.IsPrimary)
	svc.AssertExpectations(t)
}

func TestHandler_CreateValidationMessage(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	validation := &domain.ActionError{
		Kind:    addressService.ErrInvalidInput,
		Message: "Please fill required fields (Address Line 1, City, State, Zip)",
	}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, validation).Once()

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/addresses", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please fill required fields (Address Line 1, City, State, Zip)", decodeError(t, rec))
}

func TestHandler_CreateMalformedBody(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/addresses", strings.NewReader(`{"city":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_UpdateNotFound(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("Update", mock.Anything, int64(7), mock.Anything).Return(nil, addressService.ErrAddressNotFound).Once()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/addresses/7", strings.NewReader(`{"addressLine1":"x"}`))
	req = mux.SetURLVars(req, map[string]string{"addressId": "7"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_DeleteInvalidID(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/addresses/abc", nil), map[string]string{"addressId": "abc"})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHandler_DeleteBackendFailure(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("Delete", mock.Anything, int64(7)).Return(&domain.ActionError{
		Kind:    addressService.ErrDeleteFailed,
		Message: "Failed to delete address",
		Cause:   errors.New("boom"),
	}).Once()

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/addresses/7", nil), map[string]string{"addressId": "7"})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to delete address", decodeError(t, rec))
}

func TestHandler_ListUnauthenticated(t *testing.T) {
	svc := new(MockAddressService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("List", mock.Anything).Return(nil, addressService.ErrNotAuthenticated).Once()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/addresses", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
