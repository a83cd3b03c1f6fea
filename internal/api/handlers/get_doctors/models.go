package get_doctors

import "github.com/m04kA/SMC-BookingClient/internal/domain"

// DoctorResponse HTTP response model
type DoctorResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
}

// SpecializationResponse HTTP response model
type SpecializationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogueResponse справочник фильтров
type CatalogueResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
	Qualifications  []string                 `json:"qualifications"`
}

// FromDomainDoctors конвертирует врачей в HTTP response
func FromDomainDoctors(doctors []domain.Doctor) []DoctorResponse {
	items := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, DoctorResponse{
			ID:             d.ID,
			Name:           d.Name,
			Phone:          d.Phone,
			Specialization: d.Specialization,
			Qualification:  d.Qualification,
		})
	}
	return items
}

// FromCatalogue конвертирует справочник в HTTP response
func FromCatalogue(catalogue domain.SpecializationCatalogue) CatalogueResponse {
	resp := CatalogueResponse{
		Specializations: make([]SpecializationResponse, 0, len(catalogue.Specializations)),
		Qualifications:  append([]string{}, catalogue.Qualifications...),
	}
	for _, s := range catalogue.Specializations {
		resp.Specializations = append(resp.Specializations, SpecializationResponse{ID: s.ID, Name: s.Name})
	}
	return resp
}
