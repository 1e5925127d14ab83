package studentservice

import "errors"

var (
	// ErrStudentNotFound возвращается, когда профиль студента не найден
	ErrStudentNotFound = errors.New("student profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что StudentService недоступен: ответы отдаются без
	// обогащения профилем.
	ErrServiceDegraded = errors.New("studentservice unavailable: graceful degradation applied")
)
