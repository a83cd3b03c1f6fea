package confirm_request

// ConfirmRequest HTTP request model; durationMinutes по умолчанию 30
type ConfirmRequest struct {
	DurationMinutes int `json:"durationMinutes,omitempty"`
}
