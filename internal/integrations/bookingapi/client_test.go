package bookingapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
	"github.com/m04kA/SMC-BookingClient/pkg/metrics"
	"github.com/m04kA/SMC-BookingClient/pkg/ptr"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, router *mux.Router, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api", 2*time.Second, staticToken("jwt-token"), logger.NewNop(), opts...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ListPatientBookings(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/patient/bookings/list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "12", r.URL.Query().Get("patientId"))

		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{
				"id": 101, "doctorId": 7, "doctorName": "Dr. Rao",
				"bookingDate": "2024-06-01", "startTime": "10:00:00",
				"status": "PENDING", "totalAmount": 500,
			},
			{
				"id": 90, "doctorId": 7, "bookingDate": "2024-05-01",
				"startTime": "09:30", "status": "completed",
				"paymentLinkUrl": "https://pay.example/90",
			},
		})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)
	bookings, err := client.ListPatientBookings(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, int64(101), bookings[0].ID)
	assert.Equal(t, domain.StatusPending, bookings[0].Status)
	assert.Equal(t, "10:00", bookings[0].StartTime.String())
	assert.Equal(t, "2024-06-01", bookings[0].BookingDate.Format(domain.DateFormat))
	assert.Equal(t, 500.0, ptr.Value(bookings[0].TotalAmount))

	assert.Equal(t, domain.StatusCompleted, bookings[1].Status)
	assert.Equal(t, "https://pay.example/90", ptr.Value(bookings[1].PaymentLink))
}

func TestClient_SubmitBookingRequest(t *testing.T) {
	router := mux.NewRouter()
	var got BookingRequest
	router.HandleFunc("/api/patient/bookings/request", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)
	err := client.SubmitBookingRequest(context.Background(), domain.BookingRequest{
		DoctorPhone:        "9990001111",
		PatientPhone:       "9998887777",
		PatientName:        "Asha",
		RequestedDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		RequestedStartTime: "10:00",
		AddressID:          42,
	})
	require.NoError(t, err)

	assert.Equal(t, BookingRequest{
		DoctorPhone:        "9990001111",
		PatientPhone:       "9998887777",
		PatientName:        "Asha",
		RequestedDate:      "2024-06-01",
		RequestedStartTime: "10:00",
		AddressID:          42,
	}, got)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantMessage string
	}{
		{name: "conflict", status: http.StatusConflict, body: `{"message":"Slot overlaps"}`, wantErr: ErrConflict, wantMessage: "Slot overlaps"},
		{name: "bad request with error field", status: http.StatusBadRequest, body: `{"error":"Invalid date"}`, wantErr: ErrBadRequest, wantMessage: "Invalid date"},
		{name: "not found", status: http.StatusNotFound, body: ``, wantErr: ErrNotFound, wantMessage: "fallback"},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantErr: ErrUnauthorized, wantMessage: "fallback"},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: ErrInvalidResponse, wantMessage: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/doctor/dashboard/requests/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			client := newTestClient(t, router)
			err := client.ConfirmRequest(context.Background(), 5, domain.ConfirmRequest{DoctorID: 3, DurationMinutes: 30})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMessage, UserMessage(err, "fallback"))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/patient/bookings/doctors", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not":"a list"}`)
	})

	client := newTestClient(t, router)
	_, err := client.ListDoctors(context.Background(), domain.DoctorFilter{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_UnknownStatusIsDecodeError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/patient/bookings/list", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "status": "TELEPORTED"}})
	})

	client := newTestClient(t, router)
	_, err := client.ListPatientBookings(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(server.URL, time.Second, nil, logger.NewNop())
	_, err := client.GetSpecializations(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_DoctorFilterAndSlotsQuery(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/patient/bookings/doctors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("specializationId"))
		assert.Equal(t, "MBBS", r.URL.Query().Get("qualification"))
		writeJSON(w, http.StatusOK, []Doctor{{ID: 7, Name: "Dr. Rao", Phone: "9990001111", Specialization: "Cardiology"}})
	})
	router.HandleFunc("/api/patient/bookings/slots/available", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("doctorId"))
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date"))
		_, _ = io.WriteString(w, `[{"id":2,"startTime":"10:30","endTime":"11:00","isAvailable":false},{"id":3,"startTime":null,"isAvailable":true},{"id":1,"startTime":"10:00:00","endTime":"10:30:00","isAvailable":true}]`)
	})

	client := newTestClient(t, router)
	ctx := context.Background()

	doctors, err := client.ListDoctors(ctx, domain.DoctorFilter{SpecializationID: ptr.Ptr(int64(4)), Qualification: ptr.Ptr("MBBS")})
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "9990001111", doctors[0].Phone)

	slots, err := client.GetAvailableSlots(ctx, 7, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, int64(1), slots[0].ID)
	assert.Equal(t, 30, slots[0].DurationMinutes())
	assert.False(t, slots[1].IsAvailable)
}

func TestClient_CompleteBookingSendsPlainText(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/doctor/dashboard/bookings/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55", mux.Vars(r)["id"])
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "Follow up in two weeks", string(body))
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 55, "status": "COMPLETED"})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)
	require.NoError(t, client.CompleteBooking(context.Background(), 55, "Follow up in two weeks"))
}

func TestClient_PaymentsAndLinks(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/payments/booking/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id":3,"bookingId":101,"amount":500,"currency":"INR","status":"PENDING","paymentLink":"https://pay.example/new","createdAt":"2024-06-01T10:05:00"},
			{"id":2,"bookingId":101,"amount":500,"currency":"INR","status":"EXPIRED","paymentLink":"https://pay.example/old","createdAt":"2024-06-01T09:00:00"}
		]`)
	}).Methods(http.MethodGet)
	var linkReq PaymentLinkRequest
	router.HandleFunc("/api/payments/links", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&linkReq))
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)
	ctx := context.Background()

	payments, err := client.GetBookingPayments(ctx, 101)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "https://pay.example/new", ptr.Value(domain.LatestPaymentLink(payments)))
	assert.Equal(t, 10, payments[0].CreatedAt.Hour())

	payment, err := client.CreatePaymentLink(ctx, domain.PaymentLinkRequest{
		BookingID: 101, PatientID: 12, Amount: 500, Currency: "INR", Description: "Consultation fee",
	})
	require.NoError(t, err)
	assert.Nil(t, payment)
	assert.Equal(t, "INR", linkReq.Currency)
	assert.Equal(t, int64(12), linkReq.PatientID)
}

func TestClient_AddressCRUD(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/addresses/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", mux.Vars(r)["userId"])
		writeJSON(w, http.StatusOK, []Address{{ID: 42, UserID: 12, AddressLine1: "1 MG Road", City: "Pune", Country: "India", IsPrimary: true}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/addresses/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		var in Address
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = 43
		writeJSON(w, http.StatusOK, in)
	}).Methods(http.MethodPost)
	router.HandleFunc("/api/addresses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodDelete)

	client := newTestClient(t, router)
	ctx := context.Background()

	addresses, err := client.ListAddresses(ctx, 12)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsPrimary)

	created, err := client.CreateAddress(ctx, 12, domain.Address{AddressLine1: "2 FC Road", City: "Pune", State: "MH", PostalCode: "411004", Country: "India"})
	require.NoError(t, err)
	assert.Equal(t, int64(43), created.ID)

	require.NoError(t, client.DeleteAddress(ctx, 43))
}

func TestClient_MetricsAndRateLimit(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/patient/bookings/specializations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SpecializationsResponse{
			Specializations: []Specialization{{ID: 1, Name: "Cardiology"}},
			Qualifications:  []string{"MBBS"},
		})
	})

	m := metrics.NewWithRegistry("booking-client", prometheus.NewRegistry())
	client := newTestClient(t, router, WithMetrics(m), WithRateLimit(1, 1))

	catalogue, err := client.GetSpecializations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", catalogue.Specializations[0].Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("booking-client", "patient.specializations", "GET", "200")))

	// второй запрос ждёт токен лимитера дольше, чем живёт контекст
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.GetSpecializations(ctx)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_RateLimitZeroBurstStillSends(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/addresses/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Address{{ID: 42, UserID: 12}})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router, WithRateLimit(20, 0))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	addresses, err := client.ListAddresses(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}
