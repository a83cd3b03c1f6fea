package models

import (
	"strings"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// Request модели

// AddressRequest запрос на создание или обновление адреса
type AddressRequest struct {
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country,omitempty"`
	IsPrimary    *bool   `json:"isPrimary,omitempty"` // nil: основной, если адрес первый
}

// MissingFields список незаполненных обязательных полей
func (r *AddressRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.AddressLine1) == "" {
		missing = append(missing, "addressLine1")
	}
	if strings.TrimSpace(r.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(r.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(r.PostalCode) == "" {
		missing = append(missing, "postalCode")
	}
	return missing
}

// ToDomain конвертирует request в доменную модель
func (r *AddressRequest) ToDomain(userID int64, isPrimary bool) domain.Address {
	country := strings.TrimSpace(r.Country)
	if country == "" {
		country = domain.DefaultCountry
	}

	var line2 *string
	if r.AddressLine2 != nil {
		if v := strings.TrimSpace(*r.AddressLine2); v != "" {
			line2 = &v
		}
	}

	return domain.Address{
		UserID:       userID,
		AddressLine1: strings.TrimSpace(r.AddressLine1),
		AddressLine2: line2,
		City:         strings.TrimSpace(r.City),
		State:        strings.TrimSpace(r.State),
		PostalCode:   strings.TrimSpace(r.PostalCode),
		Country:      country,
		IsPrimary:    isPrimary,
	}
}

// Response модели

// AddressResponse ответ с адресом
type AddressResponse struct {
	ID           int64   `json:"id"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
	IsPrimary    bool    `json:"isPrimary"`
}

// AddressListResponse ответ со списком адресов
type AddressListResponse struct {
	Addresses []AddressResponse `json:"addresses"`
	Total     int               `json:"total"`
}

// FromDomainAddress конвертирует доменную модель в response
func FromDomainAddress(a *domain.Address) *AddressResponse {
	return &AddressResponse{
		ID:           a.ID,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsPrimary:    a.IsPrimary,
	}
}

// FromDomainAddressList конвертирует список адресов в response
func FromDomainAddressList(addresses []domain.Address) *AddressListResponse {
	items := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		items = append(items, *FromDomainAddress(&addresses[i]))
	}
	return &AddressListResponse{Addresses: items, Total: len(items)}
}
