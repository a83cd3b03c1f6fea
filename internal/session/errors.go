package session

import "errors"

var (
	// ErrNotAuthenticated возвращается, когда личность не установлена (граница логина)
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrInvalidIdentity возвращается при попытке войти с личностью без идентификатора
	ErrInvalidIdentity = errors.New("session: invalid identity")

	// ErrNoIdentity возвращается хранилищем, если сохранённой личности нет
	ErrNoIdentity = errors.New("session: no stored identity")

	// ErrStorage возвращается при ошибках хранилища личности
	ErrStorage = errors.New("session: storage error")
)
