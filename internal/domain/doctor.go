package domain

import "time"

// Doctor represents a bookable doctor
type Doctor struct {
	ID             int64
	Name           string
	Phone          string
	Specialization string
	Qualification  string
}

// Specialization is a catalogue entry used to filter doctors
type Specialization struct {
	ID   int64
	Name string
}

// SpecializationCatalogue groups filter options returned by the backend
type SpecializationCatalogue struct {
	Specializations []Specialization
	Qualifications  []string
}

// DoctorFilter narrows the doctor list, nil fields are not applied
type DoctorFilter struct {
	SpecializationID *int64
	Qualification    *string
}

// PendingRequest is a patient's booking request awaiting doctor triage
type PendingRequest struct {
	ID                 int64
	PatientPhone       string
	PatientName        string
	RequestedDate      time.Time
	RequestedStartTime string
	Description        *string
	AddressID          *int64
}
