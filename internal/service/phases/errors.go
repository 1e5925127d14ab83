package phases

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("phases: event not found")

	// ErrInvalidPhase возвращается при попытке установить несуществующую фазу
	ErrInvalidPhase = errors.New("phases: invalid phase value")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("phases: internal error")
)
