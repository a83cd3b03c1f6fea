package addresses

import (
	"errors"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

var (
	// ErrNotAuthenticated возвращается, когда личности нет
	ErrNotAuthenticated = session.ErrNotAuthenticated

	// ErrInvalidInput возвращается при незаполненных обязательных полях
	ErrInvalidInput = errors.New("addresses: invalid input data")

	// ErrAddressNotFound возвращается, когда адрес не найден
	ErrAddressNotFound = errors.New("addresses: address not found")

	// ErrLoadFailed не удалось загрузить адреса
	ErrLoadFailed = errors.New("addresses: load failed")

	// ErrSaveFailed не удалось создать или обновить адрес
	ErrSaveFailed = errors.New("addresses: save failed")

	// ErrDeleteFailed не удалось удалить адрес
	ErrDeleteFailed = errors.New("addresses: delete failed")
)

const (
	msgLoadFailed     = "Failed to load addresses"
	msgSaveFailed     = "Failed to save address"
	msgDeleteFailed   = "Failed to delete address"
	msgRequiredFields = "Please fill required fields (Address Line 1, City, State, Zip)"
)
