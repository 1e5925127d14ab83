package check_booking_limit

import (
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/check_booking_limit"
)

// BookingLimitResponse ответ проверки лимита бронирований
type BookingLimitResponse struct {
	CanBook      bool   `json:"canBook"`
	CurrentCount int    `json:"currentCount"`
	MaxAllowed   int    `json:"maxAllowed"`
	Phase        int    `json:"phase"`
	Message      string `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ usecase в API модель
func FromUseCaseResponse(resp *usecase.Response) *BookingLimitResponse {
	return &BookingLimitResponse{
		CanBook:      resp.CanBook,
		CurrentCount: resp.CurrentCount,
		MaxAllowed:   resp.MaxAllowed,
		Phase:        int(resp.Phase),
		Message:      resp.Message,
	}
}
