package realtime

import "errors"

var (
	// ErrHubClosed возвращается при подписке на закрытый хаб
	ErrHubClosed = errors.New("realtime: hub closed")

	// ErrInvalidTopic возвращается для пустого топика
	ErrInvalidTopic = errors.New("realtime: invalid topic")

	// ErrNilHandler возвращается, если обработчик не передан
	ErrNilHandler = errors.New("realtime: nil handler")

	// ErrConnect возвращается при ошибке установки соединения
	ErrConnect = errors.New("realtime: connect failed")

	// ErrProtocol возвращается при ERROR-фрейме брокера или неожиданном фрейме
	ErrProtocol = errors.New("realtime: protocol error")

	// ErrDecode возвращается при ошибке разбора тела сообщения
	ErrDecode = errors.New("realtime: failed to decode message")
)
