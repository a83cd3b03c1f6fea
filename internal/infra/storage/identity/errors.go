package identity

import (
	"errors"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

var (
	// ErrNotFound сохранённой личности нет; совпадает с session.ErrNoIdentity для errors.Is
	ErrNotFound = session.ErrNoIdentity

	// ErrEncode возвращается при ошибке сериализации личности
	ErrEncode = errors.New("identity.storage: failed to encode identity")

	// ErrDecode возвращается при ошибке десериализации личности
	ErrDecode = errors.New("identity.storage: failed to decode identity")

	// ErrIO возвращается при ошибке файловой системы
	ErrIO = errors.New("identity.storage: io error")

	// ErrRedis возвращается при ошибке команды redis
	ErrRedis = errors.New("identity.storage: redis error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("identity.storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("identity.storage: failed to execute query")
)
