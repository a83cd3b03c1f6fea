package wizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	bookingWizard "github.com/m04kA/SMC-BookingClient/internal/usecase/booking_wizard"
	patientDashboard "github.com/m04kA/SMC-BookingClient/internal/usecase/patient_dashboard"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
)

type MockWizard struct {
	mock.Mock
}

func (m *MockWizard) CurrentState() bookingWizard.State {
	return m.Called().Get(0).(bookingWizard.State)
}

func (m *MockWizard) SelectDoctor(doctor domain.Doctor) error {
	return m.Called(doctor).Error(0)
}

func (m *MockWizard) SelectDate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

func (m *MockWizard) SelectSlot(startTime string) error {
	return m.Called(startTime).Error(0)
}

func (m *MockWizard) SetDetails(patientName, patientPhone, description string) error {
	return m.Called(patientName, patientPhone, description).Error(0)
}

func (m *MockWizard) SelectAddress(addressID int64) error {
	return m.Called(addressID).Error(0)
}

func (m *MockWizard) Next() error {
	return m.Called().Error(0)
}

func (m *MockWizard) Back() error {
	return m.Called().Error(0)
}

func (m *MockWizard) Cancel() {
	m.Called()
}

func (m *MockWizard) Submit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPatientDashboard struct {
	mock.Mock
}

func (m *MockPatientDashboard) StartBooking(doctor domain.Doctor) error {
	return m.Called(doctor).Error(0)
}

func (m *MockPatientDashboard) NewBooking() error {
	return m.Called().Error(0)
}

func (m *MockPatientDashboard) Doctor(id int64) (domain.Doctor, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.Doctor), args.Bool(1)
}

var drRao = domain.Doctor{ID: 3, Name: "Dr Rao", Phone: "9000000001", Specialization: "Cardiology"}

func newHandler() (*Handler, *MockWizard, *MockPatientDashboard) {
	wizard := new(MockWizard)
	dashboard := new(MockPatientDashboard)
	return NewHandler(wizard, dashboard, logger.NewNop()), wizard, dashboard
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	var body StateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandler_OpenForDoctor(t *testing.T) {
	h, wizard, dashboard := newHandler()

	dashboard.On("Doctor", int64(3)).Return(drRao, true).Once()
	dashboard.On("StartBooking", drRao).Return(nil).Once()
	wizard.On("CurrentState").Return(bookingWizard.State{
		Open:       true,
		Step:       bookingWizard.StepSelectDateAndSlot,
		SkipDoctor: true,
		Draft:      bookingWizard.Draft{Doctor: &drRao, PatientName: "Asha"},
	}).Once()

	rec := httptest.NewRecorder()
	h.Open(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/open", strings.NewReader(`{"doctorId":3}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, "select_date_and_slot", state.Step)
	assert.True(t, state.SkipDoctor)
	require.NotNil(t, state.Draft.Doctor)
	assert.Equal(t, "Dr Rao", state.Draft.Doctor.Name)
	dashboard.AssertExpectations(t)
}

func TestHandler_OpenUnknownDoctor(t *testing.T) {
	h, _, dashboard := newHandler()
	dashboard.On("Doctor", int64(99)).Return(domain.Doctor{}, false).Once()

	rec := httptest.NewRecorder()
	h.Open(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/open", strings.NewReader(`{"doctorId":99}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	dashboard.AssertNotCalled(t, "StartBooking", mock.Anything)
}

func TestHandler_OpenNotMounted(t *testing.T) {
	h, _, dashboard := newHandler()
	dashboard.On("NewBooking").Return(patientDashboard.ErrNotMounted).Once()

	rec := httptest.NewRecorder()
	h.Open(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/open", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_DateParsesDay(t *testing.T) {
	h, wizard, _ := newHandler()

	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	wizard.On("SelectDate", mock.Anything, june1).Return(nil).Once()
	wizard.On("CurrentState").Return(bookingWizard.State{Open: true, Step: bookingWizard.StepSelectDateAndSlot, Draft: bookingWizard.Draft{Date: &june1}}).Once()

	rec := httptest.NewRecorder()
	h.Date(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/date", strings.NewReader(`{"date":"2024-06-01"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	require.NotNil(t, state.Draft.Date)
	assert.Equal(t, "2024-06-01", *state.Draft.Date)
	wizard.AssertExpectations(t)
}

func TestHandler_DateRejectsBadFormat(t *testing.T) {
	h, wizard, _ := newHandler()

	rec := httptest.NewRecorder()
	h.Date(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/date", strings.NewReader(`{"date":"June 1"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	wizard.AssertNotCalled(t, "SelectDate", mock.Anything, mock.Anything)
}

func TestHandler_NextStepIncomplete(t *testing.T) {
	h, wizard, _ := newHandler()
	wizard.On("Next").Return(bookingWizard.ErrStepIncomplete).Once()

	rec := httptest.NewRecorder()
	h.Next(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/next", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SlotUnavailable(t *testing.T) {
	h, wizard, _ := newHandler()
	wizard.On("SelectSlot", "10:00").Return(bookingWizard.ErrSlotNotAvailable).Once()

	rec := httptest.NewRecorder()
	h.Slot(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/slot", strings.NewReader(`{"startTime":"10:00"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_SubmitFailureUsesStateMessage(t *testing.T) {
	h, wizard, _ := newHandler()
	wizard.On("Submit", mock.Anything).Return(bookingWizard.ErrSubmitFailed).Once()
	wizard.On("CurrentState").Return(bookingWizard.State{
		Open:        true,
		Step:        bookingWizard.StepReviewAndSubmit,
		SubmitError: "Doctor is not available on this date",
	}).Once()

	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/submit", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Doctor is not available on this date", body.Error)
}

func TestHandler_CancelReturnsClosedState(t *testing.T) {
	h, wizard, _ := newHandler()
	wizard.On("Cancel").Once()
	wizard.On("CurrentState").Return(bookingWizard.State{}).Once()

	rec := httptest.NewRecorder()
	h.Cancel(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizard/cancel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeState(t, rec).Open)
	wizard.AssertExpectations(t)
}

func TestHandler_StateListsSelectableSlots(t *testing.T) {
	h, wizard, _ := newHandler()

	slots := []domain.Slot{
		{ID: 1, StartTime: "10:00", EndTime: "10:30", IsAvailable: true},
		{ID: 2, StartTime: "10:30", EndTime: "11:00", IsAvailable: false},
	}
	wizard.On("CurrentState").Return(bookingWizard.State{
		Open:       true,
		Step:       bookingWizard.StepSelectDateAndSlot,
		Slots:      slots,
		Selectable: domain.AvailableSlots(slots),
	}).Once()

	rec := httptest.NewRecorder()
	h.State(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wizard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	require.Len(t, state.Slots, 2)
	require.Len(t, state.Selectable, 1)
	assert.Equal(t, "10:00", state.Selectable[0].StartTime)
	assert.Equal(t, 30, state.Selectable[0].DurationMinutes)
}
