package delete_event

import "context"

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Delete(ctx context.Context, id int64) error
	DeleteTimeRanges(ctx context.Context, eventID int64) (int64, error)
	DeleteParticipants(ctx context.Context, eventID int64) (int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteByEvent(ctx context.Context, eventID int64) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteByEvent(ctx context.Context, eventID int64) (int64, error)
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
