package check_booking_limit

import "github.com/avykhr/CareerDay-BookingService/internal/domain"

// Request модель запроса проверки лимита бронирований
type Request struct {
	StudentID int64
	EventID   int64
}

// Response результат проверки лимита.
// Ответ советующий: окончательное решение принимает бронирование
// внутри своей транзакции — между проверкой и бронью фаза или счетчик
// могли измениться.
type Response struct {
	CanBook      bool
	CurrentCount int
	MaxAllowed   int
	Phase        domain.Phase
	Message      string
}
