package check_booking_limit

import (
	"context"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedIntervals(ctx context.Context, studentID, eventID int64) ([]*domain.BookedInterval, error)
}

// PhaseController интерфейс ленивой актуализации фазы события
type PhaseController interface {
	EnsureCurrent(ctx context.Context, e *domain.Event) (domain.Phase, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
