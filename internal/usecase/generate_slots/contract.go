package generate_slots

import (
	"context"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetTimeRanges(ctx context.Context, eventID int64) ([]*domain.TimeRange, error)
	GetActiveCompanies(ctx context.Context, eventID int64) ([]int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int64, error)
	ListBookedStarts(ctx context.Context, eventID, companyID int64) (map[int64]bool, error)
	DeleteUnbooked(ctx context.Context, eventID, companyID int64) (int64, error)
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
