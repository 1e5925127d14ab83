package phases

import (
	"context"
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListOpenForAdvance(ctx context.Context) ([]*domain.Event, error)
	UpdatePhase(ctx context.Context, id int64, phase domain.Phase, expectedVersion int64) error
	SetPhaseOverride(ctx context.Context, id int64, phase domain.Phase, override bool) error
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

// Metrics интерфейс счетчика переходов фаз (опционально, может быть nil)
type Metrics interface {
	PhaseTransition(trigger string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
