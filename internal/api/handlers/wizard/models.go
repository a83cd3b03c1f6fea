package wizard

import (
	"github.com/m04kA/SMC-BookingClient/internal/domain"
	bookingWizard "github.com/m04kA/SMC-BookingClient/internal/usecase/booking_wizard"
)

// OpenRequest открытие мастера; с doctorId мастер открывается сразу на выборе даты
type OpenRequest struct {
	DoctorID *int64 `json:"doctorId,omitempty"`
}

// DoctorRequest выбор врача
type DoctorRequest struct {
	DoctorID int64 `json:"doctorId"`
}

// DateRequest выбор даты
type DateRequest struct {
	Date string `json:"date"` // "2024-06-01"
}

// SlotRequest выбор слота
type SlotRequest struct {
	StartTime string `json:"startTime"` // "10:00"
}

// DetailsRequest данные пациента
type DetailsRequest struct {
	PatientName  string `json:"patientName"`
	PatientPhone string `json:"patientPhone"`
	Description  string `json:"description"`
}

// AddressRequest выбор адреса
type AddressRequest struct {
	AddressID int64 `json:"addressId"`
}

// DoctorResponse HTTP response model
type DoctorResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization,omitempty"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	Doctor       *DoctorResponse `json:"doctor,omitempty"`
	Date         *string         `json:"date,omitempty"`
	SlotTime     string          `json:"slotTime,omitempty"`
	AddressID    *int64          `json:"addressId,omitempty"`
	Description  string          `json:"description,omitempty"`
	PatientName  string          `json:"patientName"`
	PatientPhone string          `json:"patientPhone"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	IsAvailable     bool   `json:"isAvailable"`
}

// AddressResponse HTTP response model
type AddressResponse struct {
	ID           int64  `json:"id"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	IsPrimary    bool   `json:"isPrimary"`
}

// StateResponse снимок мастера
type StateResponse struct {
	Open        bool              `json:"open"`
	Step        string            `json:"step"`
	StepIndex   int               `json:"stepIndex"`
	SkipDoctor  bool              `json:"skipDoctor"`
	CanAdvance  bool              `json:"canAdvance"`
	Draft       DraftResponse     `json:"draft"`
	Slots       []SlotResponse    `json:"slots"`
	Selectable  []SlotResponse    `json:"selectableSlots"`
	SlotsError  bool              `json:"slotsError"`
	Addresses   []AddressResponse `json:"addresses"`
	Submitting  bool              `json:"submitting"`
	SubmitError string            `json:"submitError,omitempty"`
}

// FromState конвертирует снимок мастера в HTTP response
func FromState(state bookingWizard.State) *StateResponse {
	resp := &StateResponse{
		Open:        state.Open,
		Step:        state.Step.String(),
		StepIndex:   int(state.Step),
		SkipDoctor:  state.SkipDoctor,
		CanAdvance:  state.CanAdvance,
		Slots:       fromSlots(state.Slots),
		Selectable:  fromSlots(state.Selectable),
		SlotsError:  state.SlotsError,
		Addresses:   make([]AddressResponse, 0, len(state.Addresses)),
		Submitting:  state.Submitting,
		SubmitError: state.SubmitError,
		Draft: DraftResponse{
			SlotTime:     state.Draft.SlotTime.String(),
			AddressID:    state.Draft.AddressID,
			Description:  state.Draft.Description,
			PatientName:  state.Draft.PatientName,
			PatientPhone: state.Draft.PatientPhone,
		},
	}

	if d := state.Draft.Doctor; d != nil {
		resp.Draft.Doctor = &DoctorResponse{ID: d.ID, Name: d.Name, Phone: d.Phone, Specialization: d.Specialization}
	}
	if state.Draft.Date != nil {
		date := state.Draft.Date.Format(domain.DateFormat)
		resp.Draft.Date = &date
	}
	for _, a := range state.Addresses {
		resp.Addresses = append(resp.Addresses, AddressResponse{
			ID:           a.ID,
			AddressLine1: a.AddressLine1,
			City:         a.City,
			IsPrimary:    a.IsPrimary,
		})
	}
	return resp
}

func fromSlots(slots []domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, SlotResponse{
			StartTime:       slots[i].StartTime.String(),
			EndTime:         slots[i].EndTime.String(),
			DurationMinutes: slots[i].DurationMinutes(),
			IsAvailable:     slots[i].IsAvailable,
		})
	}
	return result
}
