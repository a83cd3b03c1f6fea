package doctor_dashboard

import (
	"errors"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

var (
	// ErrNotAuthenticated граница логина: личности нет
	ErrNotAuthenticated = session.ErrNotAuthenticated

	// ErrNotDoctor личность не принадлежит врачу
	ErrNotDoctor = errors.New("doctor_dashboard: identity is not a doctor")

	// ErrNotMounted дашборд не смонтирован
	ErrNotMounted = errors.New("doctor_dashboard: not mounted")

	// ErrSubscribe не удалось подписаться на топик врача
	ErrSubscribe = errors.New("doctor_dashboard: subscribe failed")

	// ErrLoadFailed фоновая загрузка не удалась
	ErrLoadFailed = errors.New("doctor_dashboard: load failed")

	// ErrInvalidPeriod период графика не daily и не weekly
	ErrInvalidPeriod = errors.New("doctor_dashboard: invalid chart period")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("doctor_dashboard: invalid input")

	// ErrBookingNotFound бронирования нет в списке выбранного дня
	ErrBookingNotFound = errors.New("doctor_dashboard: booking not found")

	// ErrPaymentLinkFailed не удалось выставить ссылку на оплату
	ErrPaymentLinkFailed = errors.New("doctor_dashboard: payment link failed")

	// ErrCompleteFailed не удалось завершить приём
	ErrCompleteFailed = errors.New("doctor_dashboard: complete failed")
)
