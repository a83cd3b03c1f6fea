package pending_requests

const (
	msgTimeSlotConflict = "Time slot conflict! Another appointment overlaps this time."
	msgConfirmFailed    = "Failed to confirm request"
	msgRejectFailed     = "Failed to reject request"
	msgAddressFailed    = "Failed to fetch address details. Request has associated address ID: %d"
)
