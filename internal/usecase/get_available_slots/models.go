package get_available_slots

import (
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// Request модель запроса доступных слотов.
// Либо пара EventID+CompanyID, либо OfferID.
type Request struct {
	EventID   int64
	CompanyID int64
	OfferID   *int64

	// OnlyFree скрывает полностью занятые слоты
	OnlyFree bool
}

// Slot один слот с живой доступностью
type Slot struct {
	ID             int64
	EventID        int64
	CompanyID      int64
	OfferID        *int64
	StartTime      time.Time
	EndTime        time.Time
	Capacity       int
	AvailableSpots int
}

// Response список слотов и действующая фаза события
type Response struct {
	Phase domain.Phase
	Slots []Slot
}
