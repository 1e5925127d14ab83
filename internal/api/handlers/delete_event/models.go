package delete_event

import (
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/delete_event"
)

// DeleteEventResponse отчет об удалении события
type DeleteEventResponse struct {
	BookingsDeleted     int64 `json:"bookingsDeleted"`
	SlotsDeleted        int64 `json:"slotsDeleted"`
	TimeRangesDeleted   int64 `json:"timeRangesDeleted"`
	ParticipantsDeleted int64 `json:"participantsDeleted"`
}

// FromUseCaseResponse конвертирует ответ usecase в API модель
func FromUseCaseResponse(resp *usecase.Response) *DeleteEventResponse {
	return &DeleteEventResponse{
		BookingsDeleted:     resp.BookingsDeleted,
		SlotsDeleted:        resp.SlotsDeleted,
		TimeRangesDeleted:   resp.TimeRangesDeleted,
		ParticipantsDeleted: resp.ParticipantsDeleted,
	}
}
