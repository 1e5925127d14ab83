package create_booking

import (
	"time"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	StudentID int64
	SlotID    int64
	Notes     *string // Дополнительные заметки (опционально)
}

// Response результат операции бронирования.
// Success=false с заполненным ErrorCode — штатный бизнес-отказ,
// а не ошибка.
type Response struct {
	Success   bool
	BookingID *int64
	ErrorCode string // пустой при успехе
	Message   string

	// Детали созданного бронирования (заполняются при успехе)
	EventID   int64
	CompanyID int64
	Phase     domain.Phase
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// rejection внутреннее представление бизнес-отказа
type rejection struct {
	code    string
	message string
}

func reject(code, message string) *rejection {
	return &rejection{code: code, message: message}
}
