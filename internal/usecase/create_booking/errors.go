package create_booking

import "errors"

// Ошибки предусловий и инфраструктуры. Бизнес-отказы (слот занят, лимит
// исчерпан, конфликт времени и т.д.) ошибками НЕ являются — они
// возвращаются в Response с заполненным ErrorCode.
var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrEventNotFound возвращается, когда событие слота не найдено
	ErrEventNotFound = errors.New("create_booking: event not found")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_booking: student not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
