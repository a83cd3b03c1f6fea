package bookingapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (транспорт, построение запроса)
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrNotFound возвращается на 404
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrConflict возвращается на 409 (например, пересечение временных слотов)
	ErrConflict = errors.New("bookingapi client: conflict")

	// ErrUnauthorized возвращается на 401 и 403
	ErrUnauthorized = errors.New("bookingapi client: unauthorized")

	// ErrBadRequest возвращается на 400
	ErrBadRequest = errors.New("bookingapi client: bad request")
)

// APIError ответ сервиса с неуспешным статусом
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bookingapi client: %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("bookingapi client: %s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

// Unwrap сопоставляет статус с sentinel-ошибкой для errors.Is
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInvalidResponse
	}
}

// UserMessage сообщение сервера для пользователя либо fallback
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
