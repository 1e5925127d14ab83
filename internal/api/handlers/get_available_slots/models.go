package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/avykhr/CareerDay-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse один слот с живой доступностью
type SlotResponse struct {
	ID             int64  `json:"id"`
	EventID        int64  `json:"eventId"`
	CompanyID      int64  `json:"companyId"`
	OfferID        *int64 `json:"offerId,omitempty"`
	StartTime      string `json:"startTime"` // ISO 8601
	EndTime        string `json:"endTime"`   // ISO 8601
	Capacity       int    `json:"capacity"`
	AvailableSpots int    `json:"availableSpots"`
}

// SlotListResponse список слотов и действующая фаза события
type SlotListResponse struct {
	Phase int            `json:"phase"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotListResponse {
	out := &SlotListResponse{
		Phase: int(resp.Phase),
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:             s.ID,
			EventID:        s.EventID,
			CompanyID:      s.CompanyID,
			OfferID:        s.OfferID,
			StartTime:      s.StartTime.Format(time.RFC3339),
			EndTime:        s.EndTime.Format(time.RFC3339),
			Capacity:       s.Capacity,
			AvailableSpots: s.AvailableSpots,
		})
	}

	return out
}
