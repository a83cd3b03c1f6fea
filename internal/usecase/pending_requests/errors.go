package pending_requests

import (
	"errors"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

var (
	// ErrNotAuthenticated граница логина: личности нет
	ErrNotAuthenticated = session.ErrNotAuthenticated

	// ErrNotDoctor личность не принадлежит врачу
	ErrNotDoctor = errors.New("pending_requests: identity is not a doctor")

	// ErrNotMounted список не смонтирован
	ErrNotMounted = errors.New("pending_requests: not mounted")

	// ErrSubscribe не удалось подписаться на топик врача
	ErrSubscribe = errors.New("pending_requests: subscribe failed")

	// ErrLoadFailed не удалось загрузить запросы
	ErrLoadFailed = errors.New("pending_requests: load failed")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("pending_requests: invalid input")

	// ErrTimeSlotConflict подтверждение пересекается с существующим приёмом (409)
	ErrTimeSlotConflict = errors.New("pending_requests: time slot conflict")

	// ErrConfirmFailed подтверждение не удалось по другой причине
	ErrConfirmFailed = errors.New("pending_requests: confirm failed")

	// ErrRejectFailed отклонение не удалось
	ErrRejectFailed = errors.New("pending_requests: reject failed")

	// ErrAddressFailed не удалось получить адрес запроса
	ErrAddressFailed = errors.New("pending_requests: address lookup failed")
)
