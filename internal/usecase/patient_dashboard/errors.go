package patient_dashboard

import (
	"errors"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

var (
	// ErrNotAuthenticated граница логина: личность не установлена
	ErrNotAuthenticated = session.ErrNotAuthenticated

	// ErrNotMounted возвращается при действии над несмонтированным дашбордом
	ErrNotMounted = errors.New("patient_dashboard: not mounted")

	// ErrSubscribe возвращается, если не удалось подписаться на топик
	ErrSubscribe = errors.New("patient_dashboard: failed to subscribe")

	// ErrLoadFailed возвращается при ошибке фоновой загрузки
	ErrLoadFailed = errors.New("patient_dashboard: load failed")
)
