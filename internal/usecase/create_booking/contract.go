package create_booking

import (
	"context"
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CountConfirmedBySlot(ctx context.Context, slotID int64) (int, error)
	GetConfirmedIntervals(ctx context.Context, studentID, eventID int64) ([]*domain.BookedInterval, error)
}

// AttemptRepository интерфейс append-only журнала попыток
type AttemptRepository interface {
	Append(ctx context.Context, rec *domain.AttemptRecord) error
}

// PhaseController интерфейс ленивой актуализации фазы события
type PhaseController interface {
	EnsureCurrent(ctx context.Context, e *domain.Event) (domain.Phase, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счетчика исходов бронирования (опционально, может быть nil)
type Metrics interface {
	BookingAttempt(outcome string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
