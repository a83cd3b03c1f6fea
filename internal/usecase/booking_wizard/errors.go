package booking_wizard

import "errors"

var (
	// ErrWizardClosed возвращается при действии над закрытым мастером
	ErrWizardClosed = errors.New("booking_wizard: wizard is closed")

	// ErrInvalidStep возвращается, когда действие недопустимо на текущем шаге
	ErrInvalidStep = errors.New("booking_wizard: action not allowed on current step")

	// ErrStepIncomplete возвращается, когда шаг не заполнен для перехода вперёд
	ErrStepIncomplete = errors.New("booking_wizard: step is incomplete")

	// ErrSlotNotAvailable возвращается, когда время не совпадает ни с одним доступным слотом
	ErrSlotNotAvailable = errors.New("booking_wizard: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_wizard: invalid input data")

	// ErrSubmitInProgress возвращается при повторной отправке во время активной
	ErrSubmitInProgress = errors.New("booking_wizard: submission already in progress")

	// ErrSubmitFailed возвращается, когда бэкенд отклонил запрос; мастер остаётся открытым
	ErrSubmitFailed = errors.New("booking_wizard: submission failed")
)
