package domain

// Defaults taken from the booking backend contract
const (
	DefaultCurrency               = "INR"
	DefaultCountry                = "India"
	DefaultPaymentAmount          = 500.0
	DefaultPaymentDescription     = "Consultation fee"
	DefaultConfirmDurationMinutes = 30
)

// Validation limits
const (
	MaxDescriptionLength   = 500
	MaxRejectMessageLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses of a booking that is still in flight
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusConfirmed,
	StatusPaid,
}

// TerminalStatuses statuses with no outgoing transition
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}
