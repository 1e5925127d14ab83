package get_available_slots

import (
	"context"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	IsActiveParticipant(ctx context.Context, eventID, companyID int64) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListWithAvailability(ctx context.Context, eventID, companyID int64) ([]*domain.AvailableSlot, error)
	ListByOffer(ctx context.Context, offerID int64) ([]*domain.AvailableSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
