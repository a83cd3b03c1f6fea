package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingClient/pkg/types"
)

// ErrUnknownStatus is returned when a status string is outside the closed set
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusConfirmed BookingStatus = "CONFIRMED" // synonym of ACCEPTED used by some backend flows
	StatusPaid      BookingStatus = "PAID"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusRejected  BookingStatus = "REJECTED"
)

var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusAccepted, StatusConfirmed, StatusRejected},
	StatusAccepted:  {StatusPaid, StatusCancelled},
	StatusConfirmed: {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusCompleted},
}

// ParseBookingStatus parses a status string, case-insensitive
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusAccepted, StatusConfirmed, StatusPaid,
		StatusCompleted, StatusCancelled, StatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsActive returns true if the status has not reached a terminal outcome
func (s BookingStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal returns true for REJECTED, COMPLETED and CANCELLED
func (s BookingStatus) IsTerminal() bool {
	for _, terminal := range TerminalStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the backend may move a booking from s to next.
// Re-asserting the same status is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Precedes reports whether later is reachable from s through one or more transitions.
func (s BookingStatus) Precedes(later BookingStatus) bool {
	seen := map[BookingStatus]bool{s: true}
	queue := []BookingStatus{s}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range transitions[current] {
			if next == later {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// Booking represents an appointment between a patient and a doctor
type Booking struct {
	ID           int64
	DoctorID     int64
	DoctorName   string
	PatientID    int64
	PatientName  string
	PatientPhone string
	BookingDate  time.Time
	StartTime    types.TimeString
	Status       BookingStatus

	PaymentStatus *string
	PaymentLink   *string
	TotalAmount   *float64
}

// IsActive returns true if the booking is PENDING, ACCEPTED, CONFIRMED or PAID
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// NeedsPayment returns true if a payment link is attached and the booking is not paid yet
func (b *Booking) NeedsPayment() bool {
	return b.PaymentLink != nil && *b.PaymentLink != "" && b.Status != StatusPaid && !b.Status.IsTerminal()
}
