package get_available_slots

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("get_available_slots: event not found")

	// ErrCompanyNotParticipant возвращается, когда компания не участвует в событии
	ErrCompanyNotParticipant = errors.New("get_available_slots: company is not an active participant")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
