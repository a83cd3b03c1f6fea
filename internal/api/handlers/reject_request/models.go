package reject_request

// RejectRequest HTTP request model
type RejectRequest struct {
	Message string `json:"message"`
}
