package create_booking

import (
	"time"

	createBooking "github.com/avykhr/CareerDay-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID int64   `json:"slotId"`
	Notes  *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) *createBooking.Request {
	return &createBooking.Request{
		StudentID: studentID,
		SlotID:    r.SlotID,
		Notes:     r.Notes,
	}
}

// BookingResponse HTTP response model.
// Success=false с заполненным errorCode — штатный бизнес-отказ.
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingID *int64 `json:"bookingId,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message"`

	EventID   int64  `json:"eventId,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
	Phase     int    `json:"phase"`
	StartTime string `json:"startTime,omitempty"` // ISO 8601
	EndTime   string `json:"endTime,omitempty"`   // ISO 8601
	CreatedAt string `json:"createdAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		Success:   resp.Success,
		BookingID: resp.BookingID,
		ErrorCode: resp.ErrorCode,
		Message:   resp.Message,
		Phase:     int(resp.Phase),
	}

	if resp.Success {
		out.EventID = resp.EventID
		out.CompanyID = resp.CompanyID
		out.StartTime = resp.StartTime.Format(time.RFC3339)
		out.EndTime = resp.EndTime.Format(time.RFC3339)
		out.CreatedAt = resp.CreatedAt.Format(time.RFC3339)
	}

	return out
}
