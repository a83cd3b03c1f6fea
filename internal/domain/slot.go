package domain

import "github.com/m04kA/SMC-BookingClient/pkg/types"

// Slot represents a doctor's time slot on a given date
type Slot struct {
	ID          int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// DurationMinutes returns slot length, 0 if the times are malformed
func (s *Slot) DurationMinutes() int {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return 0
	}
	end, err := s.EndTime.Minutes()
	if err != nil || end < start {
		return 0
	}
	return end - start
}

// AvailableSlots filters out slots that cannot be booked
func AvailableSlots(slots []Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.IsAvailable {
			result = append(result, s)
		}
	}
	return result
}
