package booking_wizard

import (
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/pkg/types"
)

// Step шаг мастера
type Step int

const (
	StepSelectDoctor Step = iota
	StepSelectDateAndSlot
	StepDetailsAndAddress
	StepReviewAndSubmit
)

func (s Step) String() string {
	switch s {
	case StepSelectDoctor:
		return "select_doctor"
	case StepSelectDateAndSlot:
		return "select_date_and_slot"
	case StepDetailsAndAddress:
		return "details_and_address"
	case StepReviewAndSubmit:
		return "review_and_submit"
	default:
		return "unknown"
	}
}

// msgSubmitFailed сообщение, если бэкенд не вернул своё
const msgSubmitFailed = "Failed to submit booking request"

// Defaults предзаполнение черновика из текущей личности
type Defaults struct {
	PatientName  string
	PatientPhone string
}

// Draft черновик бронирования; живёт, пока мастер открыт
type Draft struct {
	Doctor       *domain.Doctor
	Date         *time.Time
	SlotTime     types.TimeString
	AddressID    *int64
	Description  string
	PatientName  string
	PatientPhone string
}

func (d Draft) clone() Draft {
	out := d
	if d.Doctor != nil {
		doctor := *d.Doctor
		out.Doctor = &doctor
	}
	if d.Date != nil {
		date := *d.Date
		out.Date = &date
	}
	if d.AddressID != nil {
		id := *d.AddressID
		out.AddressID = &id
	}
	return out
}

// State снимок мастера для отображения
type State struct {
	Open        bool
	Step        Step
	SkipDoctor  bool // мастер открыт сразу на шаге даты
	Draft       Draft
	Slots       []domain.Slot
	Selectable  []domain.Slot // слоты, которые можно выбрать
	SlotsError  bool
	Addresses   []domain.Address
	Submitting  bool
	SubmitError string
	CanAdvance  bool
}
