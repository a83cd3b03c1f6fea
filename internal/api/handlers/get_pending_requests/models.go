package get_pending_requests

import "github.com/m04kA/SMC-BookingClient/internal/domain"

// PendingRequestResponse HTTP response model
type PendingRequestResponse struct {
	ID                 int64   `json:"id"`
	PatientPhone       string  `json:"patientPhone"`
	PatientName        string  `json:"patientName"`
	RequestedDate      string  `json:"requestedDate"`
	RequestedStartTime string  `json:"requestedStartTime"`
	Description        *string `json:"description,omitempty"`
	AddressID          *int64  `json:"addressId,omitempty"`
}

// PendingRequestsResponse список запросов
type PendingRequestsResponse struct {
	Requests   []PendingRequestResponse `json:"requests"`
	Total      int                      `json:"total"`
	LoadFailed bool                     `json:"loadFailed"`
}

// FromDomainRequests конвертирует доменные запросы в HTTP response
func FromDomainRequests(requests []domain.PendingRequest, loadFailed bool) *PendingRequestsResponse {
	items := make([]PendingRequestResponse, 0, len(requests))
	for _, p := range requests {
		items = append(items, PendingRequestResponse{
			ID:                 p.ID,
			PatientPhone:       p.PatientPhone,
			PatientName:        p.PatientName,
			RequestedDate:      p.RequestedDate.Format(domain.DateFormat),
			RequestedStartTime: p.RequestedStartTime,
			Description:        p.Description,
			AddressID:          p.AddressID,
		})
	}
	return &PendingRequestsResponse{Requests: items, Total: len(items), LoadFailed: loadFailed}
}
