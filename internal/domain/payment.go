package domain

import "time"

// Payment is a payment record attached to a booking
type Payment struct {
	ID          int64
	BookingID   int64
	PatientID   int64
	Amount      float64
	Currency    string
	Status      string
	PaymentLink *string
	CreatedAt   time.Time
}

// PaymentLinkRequest asks the backend to issue a payment link for a booking
type PaymentLinkRequest struct {
	BookingID   int64
	PatientID   int64
	Amount      float64
	Currency    string
	Description string
}

// LatestPaymentLink returns the link of the newest payment.
// Backend lists are newest first.
func LatestPaymentLink(payments []Payment) *string {
	if len(payments) == 0 {
		return nil
	}
	link := payments[0].PaymentLink
	if link == nil || *link == "" {
		return nil
	}
	return link
}
