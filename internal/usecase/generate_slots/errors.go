package generate_slots

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("generate_slots: event not found")

	// ErrNoTimeRanges возвращается, когда у события нет временных окон
	ErrNoTimeRanges = errors.New("generate_slots: event has no time ranges")

	// ErrNoActiveCompanies возвращается, когда у события нет активных компаний
	ErrNoActiveCompanies = errors.New("generate_slots: event has no active companies")

	// ErrCompanyNotParticipant возвращается, когда указанная компания
	// не является активным участником события
	ErrCompanyNotParticipant = errors.New("generate_slots: company is not an active participant")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
